package main

import "github.com/etrmlabs/scriba/cmd"

func main() {
	cmd.Execute()
}
