package main

import "asset-sync/cmd"

func main() {
	cmd.Execute()
}
