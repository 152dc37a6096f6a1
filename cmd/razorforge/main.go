package main

import "github.com/razorforge-lang/razorforge/cli"

func main() {
	cli.Execute()
}
