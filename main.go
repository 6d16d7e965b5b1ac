package main

import (
	"github.com/SaiNageswarS/edu-assist/cli"
	"github.com/SaiNageswarS/go-api-boot/dotenv"
)

func main() {
	dotenv.LoadEnv()
	cli.Execute()
}
