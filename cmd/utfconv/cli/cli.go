package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/transform"

	"github.com/oy3o/utfconv"
)

var (
	verbose bool
	inPath  string
	outPath string

	from = newFormValue("auto")
	to   = newFormValue("utf8")

	writeBOM bool
	withNUL  bool

	log = zap.NewNop()

	Main = &cobra.Command{
		Use:           "utfconv",
		Short:         "Convert and validate UTF-8, UTF-16 and UTF-32 text",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			if verbose {
				log, err = zap.NewDevelopment()
			} else {
				log, err = zap.NewProduction()
			}
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = log.Sync()
		},
	}

	convertCmd = &cobra.Command{
		Use:   "convert",
		Short: "Convert input from one encoding form to another",
		Args:  cobra.NoArgs,
		RunE:  runConvert,
	}

	sizeCmd = &cobra.Command{
		Use:   "size",
		Short: "Print the number of code units the converted input needs",
		Args:  cobra.NoArgs,
		RunE:  runSize,
	}

	validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Check that the input is well-formed",
		Args:  cobra.NoArgs,
		RunE:  runValidate,
	}

	detectCmd = &cobra.Command{
		Use:   "detect",
		Short: "Print the encoding form announced by a byte order mark",
		Args:  cobra.NoArgs,
		RunE:  runDetect,
	}
)

func init() {
	pf := Main.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "log with the development configuration")
	pf.StringVar(&inPath, "in", "", "input file (default stdin)")

	for _, c := range []*cobra.Command{convertCmd, sizeCmd, validateCmd} {
		c.Flags().Var(from, "from", "input encoding, or auto to detect a byte order mark")
	}
	for _, c := range []*cobra.Command{convertCmd, sizeCmd} {
		c.Flags().Var(to, "to", "output encoding")
	}
	convertCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")
	convertCmd.Flags().BoolVar(&writeBOM, "bom", false, "start the output with a byte order mark")
	sizeCmd.Flags().BoolVar(&withNUL, "nul", false, "stop at the first NUL and count it")

	Main.AddCommand(convertCmd, sizeCmd, validateCmd, detectCmd)
}

func openInput(cmd *cobra.Command) (*bufio.Reader, func(), error) {
	if inPath == "" {
		return bufio.NewReader(cmd.InOrStdin()), func() {}, nil
	}
	f, err := os.Open(inPath)
	if err != nil {
		return nil, nil, err
	}
	return bufio.NewReader(f), func() { f.Close() }, nil
}

// inputForm resolves --from, consuming a byte order mark when detecting.
func inputForm(in *bufio.Reader) (utfconv.Form, error) {
	if !from.auto() {
		return from.form, nil
	}
	head, _ := in.Peek(4)
	f, n, ok := utfconv.DetectBOM(head)
	if !ok {
		log.Debug("no byte order mark, assuming UTF-8")
		return utfconv.FormUTF8, nil
	}
	log.Debug("detected byte order mark", zap.Stringer("form", f))
	_, err := in.Discard(n)
	return f, err
}

func runConvert(cmd *cobra.Command, args []string) error {
	in, done, err := openInput(cmd)
	if err != nil {
		return err
	}
	defer done()

	src, err := inputForm(in)
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	bw := bufio.NewWriter(out)

	if writeBOM {
		if _, err := bw.Write(utfconv.BOM(to.form)); err != nil {
			return err
		}
	}
	r := transform.NewReader(in, utfconv.NewTransformer(src, to.form))
	n, err := io.Copy(bw, r)
	if ferr := bw.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		log.Error("conversion failed", zap.Stringer("from", src), zap.Stringer("to", to.form), zap.Error(err))
		return err
	}
	log.Debug("converted", zap.Stringer("from", src), zap.Stringer("to", to.form), zap.Int64("bytes", n))
	return nil
}

func runSize(cmd *cobra.Command, args []string) error {
	in, done, err := openInput(cmd)
	if err != nil {
		return err
	}
	defer done()

	src, err := inputForm(in)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	res, err := utfconv.Convert(nil, data, src, to.form, &utfconv.Options{Mode: utfconv.ModeQuery, Terminated: withNUL})
	if err != nil {
		log.Error("size query failed", zap.Stringer("from", src), zap.Error(err))
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Size)
	return err
}

func runValidate(cmd *cobra.Command, args []string) error {
	in, done, err := openInput(cmd)
	if err != nil {
		return err
	}
	defer done()

	src, err := inputForm(in)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	if rem := len(data) % src.Encoding.UnitSize(); rem != 0 {
		err = &utfconv.SequenceError{Encoding: src.Encoding, Offset: len(data) / src.Encoding.UnitSize(), Truncated: true}
	} else {
		_, err = utfconv.Convert(nil, data, src, src, &utfconv.Options{Mode: utfconv.ModeQuery})
	}

	var se *utfconv.SequenceError
	if errors.As(err, &se) {
		fmt.Fprintf(cmd.OutOrStdout(), "invalid %v at byte %d: %v\n", src, se.Offset*src.Encoding.UnitSize(), se)
		return err
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "valid %v\n", src)
	return err
}

func runDetect(cmd *cobra.Command, args []string) error {
	in, done, err := openInput(cmd)
	if err != nil {
		return err
	}
	defer done()

	head, _ := in.Peek(4)
	f, _, ok := utfconv.DetectBOM(head)
	if !ok {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), "none")
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), f)
	return err
}
