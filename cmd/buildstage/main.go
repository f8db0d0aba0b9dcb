package main

import "buildstage/internal/cli"

func main() {
	cli.Execute()
}
