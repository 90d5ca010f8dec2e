package app

import "io"

type Config struct {
	Server string
	IP     string
	Limit  int
	Out    io.Writer
}
