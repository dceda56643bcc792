package main

import "github.com/dzjyyds666/stq/cmd"

func main() {
	cmd.Execute()
}
