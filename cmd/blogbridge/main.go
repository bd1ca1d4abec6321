package main

import "github.com/pitosalas/blogbridge-sub012/internal/runtime"

func main() {
	runtime.New().Run()
}
