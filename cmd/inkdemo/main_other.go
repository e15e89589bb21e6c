//go:build !linux

// Command inkdemo shows an image on a PocketBook screen through the InkView
// runtime. It only runs on the device.
package main

import "log"

func main() {
	log.Fatal("inkdemo: the InkView runtime is only available on Linux")
}
