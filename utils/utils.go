package utils

import (
	"crypto/rand"
	"math/big"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const joinCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// JoinCodeLength The fixed length of collage join codes.
const JoinCodeLength = 4

func GenerateUuid() string {
	uuid1, err := uuid.NewUUID()
	if err != nil {
		panic("Failed to generate UUID")
	}

	return uuid1.String()
}

// GenerateJoinCode Generates a random join code from the [0-9A-Z] alphabet.
// Uniqueness is enforced by the database constraint, not here.
func GenerateJoinCode() string {
	code := make([]byte, JoinCodeLength)
	for i := range code {
		index, err := rand.Int(rand.Reader, big.NewInt(int64(len(joinCodeAlphabet))))
		if err != nil {
			panic("Failed to generate join code")
		}
		code[i] = joinCodeAlphabet[index.Int64()]
	}

	return string(code)
}

func IsDirectoryWritable(path string) bool {
	probeFile := filepath.Join(path, ".probe")

	if err := os.WriteFile(probeFile, []byte{}, 0600); err != nil {
		return false
	}

	_ = os.Remove(probeFile)
	return true
}
