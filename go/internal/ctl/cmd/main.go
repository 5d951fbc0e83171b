package main

import "github.com/mcdev12/matchclock/go/internal/ctl"

func main() {
	ctl.Execute()
}
