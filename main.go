package main

import "github.com/user/mediasort/cmd"

func main() {
	cmd.Execute()
}
