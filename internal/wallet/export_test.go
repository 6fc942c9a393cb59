package wallet

import "github.com/ethereum/go-ethereum/accounts/keystore"

func init() {
	scryptN, scryptP = keystore.LightScryptN, keystore.LightScryptP
}
