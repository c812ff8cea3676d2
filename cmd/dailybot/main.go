package main

import "github.com/dailybot/dailybot-cli/internal/cli"

func main() {
	cli.Execute()
}
