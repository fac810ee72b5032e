package config

import (
	"os"
	"strconv"
)

type Config struct {
	ServerPort string
	PDFDir     string
	JSONDir    string
	// FrontMatterOffset is the 0-based page index of January's festival
	// page. The standard takvimi layout puts it at 7, but the layout is a
	// property of the document template, not a guarantee.
	FrontMatterOffset int
}

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "3010"
	}

	pdfDir := os.Getenv("PDF_DIR")
	if pdfDir == "" {
		pdfDir = "takvimi-pdf"
	}

	jsonDir := os.Getenv("JSON_DIR")
	if jsonDir == "" {
		jsonDir = "api/takvimi"
	}

	offset := 7
	if v := os.Getenv("FRONT_MATTER_OFFSET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	return &Config{
		ServerPort:        serverPort,
		PDFDir:            pdfDir,
		JSONDir:           jsonDir,
		FrontMatterOffset: offset,
	}
}
