package main

// @title Storefront Bot APIs
// @version 1.0
// @description LINE storefront bot webhook and admin API.

// @host localhost:9089
// @BasePath /
// @schemes http
import (
	_ "storefront-bot/docs"
	protocol "storefront-bot/protocal"

	"github.com/sirupsen/logrus"
)

func main() {
	err := protocol.ServeHTTP()
	if err != nil {
		logrus.Fatalln(err)
	}
}
