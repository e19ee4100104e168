package main

import "snapfeed/internal/app"

func main() {
	app.Run()
}
