package main

import "flight-logger/cmd"

func main() {
	cmd.Execute()
}
