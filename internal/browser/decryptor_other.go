//go:build !darwin && !linux

package browser

import "context"

func chromiumDecryptor(_ context.Context, vendor chromiumVendor) (chromiumDecryptFunc, []string) {
	return nil, []string{vendor.label + ": cookie decryption unsupported on this OS"}
}
