package main

import "assetpress/cmd"

func main() {
	cmd.Execute()
}
