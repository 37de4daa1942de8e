package main

import "github.com/ukprmenbersaku-abc/help-study/cmd/hs/root"

func main() {
	root.Execute()
}
