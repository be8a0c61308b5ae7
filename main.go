package main

import "github.com/kozaktomas/attendance-log/cmd"

func main() {
	cmd.Execute()
}
