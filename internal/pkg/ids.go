package pkg

import "github.com/google/uuid"

func GenerateGameID() string {
	return uuid.NewString()
}

func GenerateNewSessionID() string {
	return uuid.NewString()
}
