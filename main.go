package main

import "github.com/hnasheralneam/scrcpy-wireless/cmd"

func main() {
	cmd.Execute()
}
