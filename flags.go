package main

import "github.com/urfave/cli/v2"

var FlagLogLevel = &cli.StringFlag{
	Name:     "log-level",
	EnvVars:  []string{"LOG_LEVEL"},
	Value:    "info",
	Required: false,
}

var FlagLogWriter = &cli.StringFlag{
	Name:     "log-writer",
	EnvVars:  []string{"LOG_WRITER"},
	Value:    "console",
	Required: false,
}

var FlagHTTPAddr = &cli.StringFlag{
	Name:     "http-addr",
	Usage:    "listen address for the HTTP API",
	EnvVars:  []string{"HTTP_ADDR"},
	Value:    ":5000",
	Required: false,
}

var FlagMQTTUrl = &cli.StringFlag{
	Name:     "mqtt-url",
	Usage:    "broker url or bare host, e.g. tcp://broker:1883",
	EnvVars:  []string{"MQTT_URL"},
	Value:    "mqtt://broker.hivemq.com",
	Required: false,
}

var FlagMQTTPort = &cli.IntFlag{
	Name:     "mqtt-port",
	Usage:    "broker port, used when mqtt-url is a bare host",
	EnvVars:  []string{"MQTT_PORT"},
	Value:    1883,
	Required: false,
}

var FlagMQTTClientID = &cli.StringFlag{
	Name:     "mqtt-client-id",
	Usage:    "generated per connect when empty",
	EnvVars:  []string{"MQTT_CLIENT_ID"},
	Required: false,
}

var FlagMQTTUsername = &cli.StringFlag{
	Name:     "mqtt-username",
	EnvVars:  []string{"MQTT_USERNAME"},
	Required: false,
}

var FlagMQTTPassword = &cli.StringFlag{
	Name:     "mqtt-password",
	EnvVars:  []string{"MQTT_PASSWORD"},
	Required: false,
}

var FlagDBPath = &cli.StringFlag{
	Name:     "db-path",
	Usage:    "path to the sqlite database file",
	EnvVars:  []string{"DB_PATH"},
	Value:    "data/lightbridge.db",
	Required: false,
}

var FlagJWTSecret = &cli.StringFlag{
	Name:     "jwt-secret",
	Usage:    "signing secret for access tokens",
	EnvVars:  []string{"JWT_SECRET"},
	Required: true,
}

var FlagDeviceURL = &cli.StringFlag{
	Name:     "device-url",
	Usage:    "base url of the device's own web server, e.g. http://192.168.1.50",
	EnvVars:  []string{"DEVICE_URL"},
	Required: false,
}
