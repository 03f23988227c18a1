package main

import "github.com/TheReasonWePlay/FTVN-sub001/cmd"

func main() {
	cmd.Execute()
}
