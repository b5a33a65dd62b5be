package main

import "github.com/pfrederiksen/hockeyref-scraper/internal/cli"

func main() {
	cli.Execute()
}
