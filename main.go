package main

import "gst-billing/cmd"

func main() {
	cmd.Execute()
}
