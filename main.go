package main

import "pharmanear/m/cmd"

func main() {
	cmd.Execute()
}
