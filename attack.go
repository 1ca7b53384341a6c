package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/danshumow-msft/FixBadRsaEncryption/padding"
	"github.com/danshumow-msft/FixBadRsaEncryption/weakkey"
)

func main() {
	var (
		workers = flag.Int("workers", 0, "number of search workers, 0 for one per CPU")
		hashes  = flag.String("hash", "", "comma separated OAEP hashes, all of them by default")
		msg     = flag.String("msg", "Msg", "message to encrypt with PKCS #1 v1.5 and OAEP")
		verbose = flag.Bool("v", false, "log the attack steps")
	)
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	opts := []weakkey.Option{}
	if *workers > 0 {
		opts = append(opts, weakkey.WithWorkers(*workers))
	}
	if *verbose {
		opts = append(opts, weakkey.WithLogger(logger))
	}

	oaepHashes := padding.Hashes()
	if *hashes != "" {
		oaepHashes = nil
		for _, name := range strings.Split(*hashes, ",") {
			h, err := padding.LookupHash(strings.TrimSpace(name))
			if err != nil {
				logger.Fatal(err)
			}
			oaepHashes = append(oaepHashes, h)
		}
	}

	ctx := context.Background()
	for _, k := range weakKeys {
		fmt.Printf("\n%s experiment\n", k.name)

		// We start with a raw plaintext in [2^(bits-1), 2^bits) reduced mod N
		bits := k.n().BitLen()
		low := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
		pt, err := rand.Int(rand.Reader, low)
		if err != nil {
			logger.Fatal(err)
		}
		pt.Add(pt, low).Mod(pt, k.n())

		res, err := weakkey.Run(ctx, k.p, k.q, k.e, rawEncrypt(pt, k), weakkey.ExactMatch(pt), opts...)
		if err != nil {
			logger.Fatal(err)
		}
		fmt.Println("pt=    ", pt)
		for _, c := range res.Candidates {
			fmt.Println("pt_out=", c.Value, "at index", c.Index)
		}
		printTimings(res)

		ct, err := encryptPKCS1v15(rand.Reader, []byte(*msg), k)
		if err != nil {
			logger.Fatal(err)
		}
		res, err = weakkey.Run(ctx, k.p, k.q, k.e, ct, weakkey.PKCS1v15Oracle{}, opts...)
		if err != nil {
			logger.Fatal(err)
		}
		fmt.Printf("PKCS #1 v1.5: found %d valid plaintexts\n", len(res.Candidates))
		for _, c := range res.Candidates {
			fmt.Printf("\tplaintext: %q padding length: %d plaintext length: %d\n", c.Message, c.PaddingLength, c.MessageLength)
		}
		printTimings(res)

		for _, h := range oaepHashes {
			ct, err := encryptOAEP(rand.Reader, []byte(*msg), nil, h, k)
			if errors.Cause(err) == padding.ErrMessageTooLong {
				fmt.Printf("OAEP %s: message does not fit, skipped\n", h)
				continue
			}
			if err != nil {
				logger.Fatal(err)
			}
			res, err := weakkey.Run(ctx, k.p, k.q, k.e, ct, weakkey.OAEPOracle{Hash: h}, opts...)
			if err != nil {
				logger.Fatal(err)
			}
			fmt.Printf("OAEP %s: found %d valid plaintexts\n", h, len(res.Candidates))
			for _, c := range res.Candidates {
				fmt.Printf("\tplaintext: %q plaintext length: %d\n", c.Message, c.MessageLength)
			}
			printTimings(res)
		}
	}
}

func printTimings(res *weakkey.Result) {
	t := res.Timings
	fmt.Println("\tgenerator search:", t.GeneratorSearch, "private key operations:", t.PrivateKeyOps,
		"plaintext search:", t.Search, "in", res.Queries, "queries")
}
