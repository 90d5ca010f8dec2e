package app

type Config struct {
	ListenAddr string
}
