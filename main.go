package main

import "github.com/GoldenFealla/SyncPlayerGo/cmd"

func main() {
	cmd.Execute()
}
