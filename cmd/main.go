package main

import (
	"log"

	"github.com/duccv/bank-web/config"
	"github.com/duccv/bank-web/pkg/logger"
	"github.com/duccv/bank-web/pkg/server"
	"go.uber.org/zap"

	_ "github.com/duccv/bank-web/docs"
)

//	@title			BANK WEB APIs
//	@version		1.0
//	@description	Backend-for-frontend of the bank web client.
//	@contact.name	DucCV
//	@BasePath		/api

// @securityDefinitions.apikey	SessionCookie
// @in							cookie
// @name						bank_session
// @description				Server side session id issued by the BFF
func main() {
	env := config.GetEnv()

	zapLogger := logger.GetLogger(env.LoggerConfig)
	zap.ReplaceGlobals(zapLogger)
	defer zapLogger.Sync()

	if err := server.StartServer(env); err != nil {
		zapLogger.Sync()
		log.Fatalf("server: %v", err)
	}
}
