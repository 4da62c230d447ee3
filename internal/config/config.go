package config

import (
	"os"
	"strconv"
)

type Config struct {
	HTTPAddr  string
	BoardSize int
	DataDir   string // empty = in-memory only
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func Load() Config {
	return Config{
		HTTPAddr:  getenv("HTTP_ADDR", ":8100"),
		BoardSize: getenvInt("BOARD_SIZE", 7),
		DataDir:   getenv("DATA_DIR", "data"),
	}
}
