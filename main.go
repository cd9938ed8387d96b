package main

import "github.com/KaramelBytes/logsum-cli/cmd"

func main() {
	cmd.Execute()
}
