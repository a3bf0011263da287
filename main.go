package main

import "github.com/daddyfatty/GetUpEarliercom-sub000/cmd/nutri"

func main() {
	nutri.Execute()
}
