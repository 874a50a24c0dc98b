package service_test

import (
	"github.com/weatherfav/pkg/crypto"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	crypto.Cost = bcrypt.MinCost
}
