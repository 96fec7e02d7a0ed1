package main

import "edtctl/cmd"

func main() {
	cmd.Execute()
}
