package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
	maxFuzzInput = 256 << 10
)

var extensions = map[string]bool{".asm": true, ".s": true, ".z80": true, ".inc": true}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	f.Add([]byte{})
	f.Add([]byte("\n\n\n"))
	f.Add([]byte("start: ld a,b\n\tret\n"))
	f.Add([]byte("a: b: c: nop\n"))
	f.Add([]byte("ld: nop\n"))
	f.Add([]byte("MACRO m\nlabel: ld a,b\nENDMACRO\nlabel: ld a,b\n"))
	f.Add([]byte("\xef\xbb\xbfld a,b\r\nret\r\n"))
	f.Add([]byte("x: MACRO\n ENDMACRO trailing\n"))
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все исходники
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if !extensions[filepath.Ext(path)] {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
