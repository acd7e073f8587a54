package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/pthm/hxkit"
	"github.com/pthm/hxkit/lib/encoding"
	"github.com/pthm/hxkit/lib/form"
	"github.com/pthm/hxkit/lib/params"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRenderCmd(c *cli) *cobra.Command {
	var defs []string

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a YAML or JSON template form to HTML",
		Long: `Render evaluates a template form read from file (or stdin) and prints
the HTML. Definitions from the config file's "defines" section and --define
flags are bound first.

Examples:
  hxkit render page.yml
  echo '["a.btn", {"href": "/"}, "Home"]' | hxkit render
  hxkit render page.yml --define title=Inbox`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			tmpl, err := parseForm(data)
			if err != nil {
				return err
			}

			env := hxkit.NewEnv()
			defines, err := c.loadDefines()
			if err != nil {
				return err
			}
			for name, v := range defines {
				env.Define(name, v)
			}
			for _, d := range defs {
				name, value, ok := strings.Cut(d, "=")
				if !ok {
					return fmt.Errorf("invalid --define %q, want name=value", d)
				}
				env.Define(name, hxkit.Text(value))
			}
			c.log.Debug("rendering template", zap.Int("defines", len(defines)+len(defs)))

			out, err := hxkit.Eval(cmd.Context(), tmpl, env)
			if err != nil {
				return err
			}
			c.log.Debug("rendered template", zap.Int("bytes", len(out)))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringArrayVarP(&defs, "define", "d", nil, "bind name=value before rendering (repeatable)")
	return cmd
}

func newParamsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "params <query>...",
		Short: "Decode query strings with bracketed keys into a tree",
		Long: `Params folds every query string argument into one tree.

Examples:
  hxkit params 'entry[title]=Hi&entry[tags][]=a&entry[tags][]=b'
  hxkit params 'a[b]=1' 'a[c]=2' --format yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parts := make([]string, len(args))
			for i, a := range args {
				parts[i] = strings.TrimPrefix(a, "?")
			}
			query := strings.Join(parts, "&")
			tree, err := params.ParseQuery(query)
			if err != nil {
				return err
			}
			c.log.Debug("decoded query", zap.String("query", query), zap.Int("keys", len(tree)))
			return c.writeTree(cmd, tree)
		},
	}
}

func newEncodeCmd(c *cli) *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Encode a flat YAML or JSON tree as a query string",
		Long: `Encode reads a mapping and prints it as key=value pairs sorted by key.
Only the top level is encoded; lists are comma joined.

Examples:
  echo '{page: 2, q: go}' | hxkit encode
  hxkit encode tree.yml --path /search`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			tree, err := parseTree(data)
			if err != nil {
				return err
			}
			c.log.Debug("encoding tree", zap.Int("keys", len(tree)))

			out := params.Encode(tree)
			if base != "" {
				out = params.Path(base, tree)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVar(&base, "path", "", "prefix the query with this path")
	return cmd
}

func newSerializeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serialize [file]",
		Short: "Serialize the form controls of an HTML document",
		Long: `Serialize reads HTML and folds the value of every input, select and
textarea into a tree, the way the page's form would be submitted.

Examples:
  hxkit serialize form.html
  hxkit render page.yml | hxkit serialize --format yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			elements, err := form.ParseHTML(bytes.NewReader(data))
			if err != nil {
				return err
			}
			c.log.Debug("parsed form controls", zap.Int("elements", len(elements)))

			tree, err := form.Serialize(elements)
			if err != nil {
				return err
			}
			return c.writeTree(cmd, tree)
		},
	}
}

func (c *cli) encoder() (*encoding.Encoder, error) {
	key := c.v.GetString("key")
	if key == "" {
		return nil, errors.New("no key configured: set key in .hxkit.yml or HXKIT_KEY")
	}
	return encoding.NewEncoder([]byte(key))
}

func newSealCmd(c *cli) *cobra.Command {
	var sensitive bool

	cmd := &cobra.Command{
		Use:   "seal [file]",
		Short: "Sign or encrypt a YAML or JSON tree",
		Long: `Seal packs a tree the way hidden state fields carry it. Signed output
is readable but tamper-proof; --sensitive encrypts it.

Examples:
  HXKIT_KEY=secret hxkit seal state.yml
  echo '{step: 2}' | hxkit seal --sensitive`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := c.encoder()
			if err != nil {
				return err
			}
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			tree, err := parseTree(data)
			if err != nil {
				return err
			}

			sealed, err := enc.Encode(tree, sensitive)
			if err != nil {
				return err
			}
			c.log.Debug("sealed tree", zap.Bool("sensitive", sensitive), zap.Int("bytes", len(sealed)))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), sealed)
			return err
		},
	}
	cmd.Flags().BoolVar(&sensitive, "sensitive", false, "encrypt instead of sign")
	return cmd
}

func newOpenCmd(c *cli) *cobra.Command {
	var sensitive bool

	cmd := &cobra.Command{
		Use:   "open [token]",
		Short: "Verify and decode a sealed tree",
		Long: `Open reverses seal. The token is read from the argument or stdin.

Examples:
  hxkit open eyJhIjoiMSJ9.c2ln
  hxkit seal state.yml | hxkit open`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := c.encoder()
			if err != nil {
				return err
			}

			var token string
			if len(args) == 1 && args[0] != "-" {
				token = args[0]
			} else {
				data, err := readInput(cmd, nil)
				if err != nil {
					return err
				}
				token = string(data)
			}

			tree, err := enc.Decode(strings.TrimSpace(token), sensitive)
			if err != nil {
				return err
			}
			return c.writeTree(cmd, tree)
		},
	}
	cmd.Flags().BoolVar(&sensitive, "sensitive", false, "the token was sealed with --sensitive")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "hxkit version %s\n", version)
			return err
		},
	}
}
