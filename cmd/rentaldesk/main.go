package main

import "rentaldesk/internal/cli"

func main() {
	cli.Execute()
}
