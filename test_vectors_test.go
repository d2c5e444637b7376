package hashbridge_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/codahale/hashbridge"
)

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

var vectors = []struct {
	name  string
	alg   hashbridge.Algorithm
	input string
	want  []byte
}{
	{"sha256/empty", hashbridge.SHA256, "", mustHex("e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855")},
	{"sha256/abc", hashbridge.SHA256, "abc", mustHex("ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad")},
	{"md5/empty", hashbridge.MD5, "", mustHex("d41d8cd98f00b204e9800998ecf8427e")},
	{"md5/abc", hashbridge.MD5, "abc", mustHex("900150983cd24fb0d6963f7d28e17f72")},
	{"blake3/empty", hashbridge.BLAKE3, "", mustHex("af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262")},
	{"blake3/abc", hashbridge.BLAKE3, "abc", mustHex("6437b3ac38465133ffb63b75273a8db548c558465d79db03fd359c6cd5bd9d85")},
	{"kt128/empty", hashbridge.KT128, "", mustHex("1ac2d450fc3b4205d19da7bfca1b37513c0803577ac7167f06fe2ce1f0ef39e5")},
	{"blake2b/abc", hashbridge.BLAKE2b, "abc", mustHex("bddd813c634239723171ef3fee98579b94964e3bb1cb3e427262c8c068d52319")},
}

func TestVectorsOneShot(t *testing.T) {
	for _, v := range vectors {
		t.Run(v.name, func(t *testing.T) {
			out := make([]byte, v.alg.Size())
			n, err := hashbridge.Hash(v.alg, []byte(v.input), out)
			if err != nil {
				t.Fatal(err)
			}
			if got := out[:n]; !bytes.Equal(got, v.want) {
				t.Errorf("Hash:\n got %x\nwant %x", got, v.want)
			}
		})
	}
}

func TestVectorsByteAtATime(t *testing.T) {
	for _, v := range vectors {
		t.Run(v.name, func(t *testing.T) {
			s, err := hashbridge.New(v.alg)
			if err != nil {
				t.Fatal(err)
			}
			defer s.Release()

			for i := range len(v.input) {
				if err := s.Update([]byte{v.input[i]}); err != nil {
					t.Fatal(err)
				}
			}

			out := make([]byte, s.Size())
			if _, err := s.Digest(out); err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(out, v.want) {
				t.Errorf("Digest:\n got %x\nwant %x", out, v.want)
			}
		})
	}
}

func TestVectorSHAKE256Long(t *testing.T) {
	got, err := hashbridge.Sum(hashbridge.SHAKE256, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := mustHex("46b9dd2b0ba88d13233b3feb743eeb243fcd52ea62b81b82b50c27646ed5762f" +
		"d75dc4ddd8c0f200cb05019d67b592f6fc821c49479ab48640292eacb3b7c4be")
	if !bytes.Equal(got, want) {
		t.Errorf("Sum:\n got %x\nwant %x", got, want)
	}

	// The first 32 bytes of a longer output are the 32-byte output.
	short, _ := hashbridge.Sum(hashbridge.SHAKE256, nil, hashbridge.WithOutputSize(32))
	if !bytes.Equal(short, want[:32]) {
		t.Errorf("Sum(32):\n got %x\nwant %x", short, want[:32])
	}
}
