package main

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petersn/bitblast/cnf"
	"github.com/petersn/bitblast/frontend"
	"github.com/petersn/bitblast/logger"
	"github.com/petersn/bitblast/solver"
)

// Toyfish is a fictitious four-word block cipher loosely based on Threefish,
// sized so that key recovery from one plaintext/ciphertext pair is a
// tractable SAT problem.

const toyfishWords = 4

var toyfishRotations = [2][2]int{{7, 11}, {9, 14}}

type toyfish struct {
	bits    int
	modulus uint64
}

// mix is the concrete add/rotate/xor mixing step.
func (tf toyfish) mix(x, y uint64, rotation int) (uint64, uint64) {
	rotation %= tf.bits
	r1 := (x + y) % tf.modulus
	r2 := ((y << uint(rotation)) | (y >> uint(tf.bits-rotation))) % tf.modulus
	return r1, r1 ^ r2
}

// encrypt runs the two-round cipher over four registers.
func (tf toyfish) encrypt(plaintext, key []uint64) []uint64 {
	regs := append([]uint64(nil), plaintext...)
	for i := range regs {
		regs[i] ^= key[i]
	}
	regs[0], regs[1] = tf.mix(regs[0], regs[1], toyfishRotations[0][0])
	regs[2], regs[3] = tf.mix(regs[2], regs[3], toyfishRotations[0][1])
	regs = []uint64{regs[1], regs[3], regs[0], regs[2]}
	regs[0], regs[1] = tf.mix(regs[0], regs[1], toyfishRotations[1][0])
	regs[2], regs[3] = tf.mix(regs[2], regs[3], toyfishRotations[1][1])
	for i := range regs {
		regs[i] = (regs[i] + key[i]) % tf.modulus
	}
	return regs
}

// blast encodes the cipher as CNF over the register and key integers,
// returning the final-round registers.
func (tf toyfish) blast(b *frontend.Builder, registers, key []*frontend.Integer) []*frontend.Integer {
	mix := func(x, y *frontend.Integer, rotation int) (*frontend.Integer, *frontend.Integer) {
		r1 := b.Add(x, y)
		r2 := b.Rotate(y, rotation)
		return r1.Integer, b.Xor(r1.Integer, r2)
	}
	regs := append([]*frontend.Integer(nil), registers...)
	for i := range regs {
		regs[i] = b.Xor(regs[i], key[i])
	}
	regs[0], regs[1] = mix(regs[0], regs[1], toyfishRotations[0][0])
	regs[2], regs[3] = mix(regs[2], regs[3], toyfishRotations[0][1])
	regs = []*frontend.Integer{regs[1], regs[3], regs[0], regs[2]}
	regs[0], regs[1] = mix(regs[0], regs[1], toyfishRotations[1][0])
	regs[2], regs[3] = mix(regs[2], regs[3], toyfishRotations[1][1])
	for i := range regs {
		regs[i] = b.Add(regs[i], key[i]).Integer
	}
	return regs
}

func fmtWords(values []uint64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%04x", v)
	}
	return strings.Join(parts, " ")
}

func newToyfishCmd() *cobra.Command {
	var bits int
	var seed int64
	cmd := &cobra.Command{
		Use:   "toyfish",
		Short: "Recover a Toyfish key from a plaintext/ciphertext pair via SAT",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToyfish(bits, seed)
		},
	}
	cmd.Flags().IntVar(&bits, "bits", 10, "word size in bits")
	cmd.Flags().Int64Var(&seed, "seed", 12345, "seed for plaintext and secret key generation")
	return cmd
}

func runToyfish(bits int, seed int64) error {
	if bits < 2 || bits > 32 {
		return fmt.Errorf("word size %d out of range [2, 32]", bits)
	}
	log := logger.Logger()
	tf := toyfish{bits: bits, modulus: 1 << uint(bits)}
	rng := rand.New(rand.NewSource(seed))

	plaintext := make([]uint64, toyfishWords)
	secretKey := make([]uint64, toyfishWords)
	for i := range plaintext {
		plaintext[i] = uint64(rng.Int63n(int64(tf.modulus)))
		secretKey[i] = uint64(rng.Int63n(int64(tf.modulus)))
	}
	ciphertext := tf.encrypt(plaintext, secretKey)
	fmt.Println("Bits:      ", bits)
	fmt.Println("Plaintext: ", fmtWords(plaintext))
	fmt.Println("Secret Key:", fmtWords(secretKey))
	fmt.Println("Ciphertext:", fmtWords(ciphertext))

	b := frontend.NewBuilder()
	registers := make([]*frontend.Integer, toyfishWords)
	key := make([]*frontend.Integer, toyfishWords)
	for i := range registers {
		registers[i] = b.NewInteger(bits)
		key[i] = b.NewInteger(bits)
	}
	for i, x := range registers {
		b.ConstrainConstant(x, plaintext[i])
	}
	final := tf.blast(b, registers, key)
	for i, x := range final {
		b.ConstrainConstant(x, ciphertext[i])
	}

	instance := b.MakeInstance()
	log.Info().
		Int("nb_variables", b.NumVars()).
		Int("nb_clauses", instance.NumClauses()).
		Msg("base instance")
	// Pre-simplify before search; unit propagation alone eliminates most of
	// the circuit once the plaintext and ciphertext constants are pinned.
	if err := instance.Propagate(); err != nil {
		fmt.Println("No solution exists; impossible plaintext + ciphertext pair.")
		return nil
	}
	log.Info().
		Uint("nb_variables", instance.Vars().Count()).
		Int("nb_clauses", instance.NumClauses()).
		Msg("after simplification")

	keyBits := make([]cnf.Var, 0, toyfishWords*bits)
	for _, k := range key {
		keyBits = append(keyBits, k.Bits()...)
	}
	found := false
	for assignment := range solver.Solve(instance) {
		for total := range b.TotalizeOver(assignment, keyBits) {
			keyValues := make([]uint64, toyfishWords)
			for i, k := range key {
				keyValues[i] = k.Decode(total)
			}
			found = true
			fmt.Println(">>> key solution found:", fmtWords(keyValues))
			if !equalWords(tf.encrypt(plaintext, keyValues), ciphertext) {
				return fmt.Errorf("recovered key %s does not reproduce the ciphertext", fmtWords(keyValues))
			}
			if equalWords(keyValues, secretKey) {
				fmt.Println("Correct key found!")
				return nil
			}
		}
	}
	if !found {
		fmt.Println("No solution exists; impossible plaintext + ciphertext pair.")
	}
	return nil
}

func equalWords(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
