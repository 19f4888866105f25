package main

import "github.com/plenert/cashbook/cashbook/cmd"

func main() {
	cmd.Execute()
}
