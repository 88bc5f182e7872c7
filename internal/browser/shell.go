package browser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"neptis/internal/models"
	"neptis/internal/paths"
)

// ErrAborted is returned by Run when the user quits a selector without choosing.
var ErrAborted = errors.New("browser: aborted")

const shellHelp = `commands:
  ls                  list the current folder
  cd <name>|..        enter a folder or go up
  stat <name>         show one entry
  get <name> <local>  download a file
  edit <name>         edit a text file
  mv <name> <new>     rename an entry
  rm <name>           delete a file or empty folder
  touch <name>        create an empty file
  mkdir <name>        create a folder
  select [name]       pick an entry (or the current folder)
  q                   quit`

// Run reads commands from in until the user quits or, in a selector mode,
// picks an entry. It returns the selected path.
func (b *Browser) Run(ctx context.Context, start string, mode Mode, in io.Reader, out io.Writer) (string, error) {
	cwd := paths.Clean(start)
	scanner := bufio.NewScanner(in)

	if mode != Explore {
		fmt.Fprintf(out, "Select %s. Type 'help' for commands.\n", mode)
	}
	for {
		fmt.Fprintf(out, "%s> ", cwd)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", ErrAborted
		}

		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}
		cmd, rest := args[0], args[1:]
		arg := func(i int) string {
			if i < len(rest) {
				return rest[i]
			}
			return ""
		}
		target := func() string { return paths.Join(cwd, arg(0)) }

		var err error
		switch cmd {
		case "q", "quit", "exit":
			return "", ErrAborted
		case "help", "?":
			fmt.Fprintln(out, shellHelp)
		case "pwd":
			fmt.Fprintln(out, cwd)
		case "ls":
			err = b.printListing(ctx, out, cwd)
		case "cd":
			cwd, err = b.changeDir(ctx, cwd, arg(0))
		case "..":
			cwd = paths.Parent(cwd)
		case "stat":
			var n *models.Node
			if n, err = b.Stat(ctx, target()); err == nil {
				printNode(out, n)
			}
		case "get":
			if len(rest) < 2 {
				err = errors.New("usage: get <name> <local>")
				break
			}
			var written int64
			if written, err = b.Download(ctx, target(), rest[1]); err == nil {
				fmt.Fprintf(out, "%d bytes written to %s\n", written, rest[1])
			}
		case "edit":
			var changed bool
			if changed, err = b.Edit(ctx, target()); err == nil && !changed {
				fmt.Fprintln(out, "no changes")
			}
		case "mv":
			if len(rest) < 2 {
				err = errors.New("usage: mv <name> <new>")
				break
			}
			_, err = b.Rename(ctx, target(), rest[1])
		case "rm":
			err = b.Delete(ctx, target())
		case "touch":
			_, err = b.CreateFile(ctx, cwd, arg(0))
		case "mkdir":
			_, err = b.CreateDir(ctx, cwd, arg(0))
		case "select":
			p := cwd
			if arg(0) != "" {
				p = target()
			}
			var n *models.Node
			if n, err = b.Stat(ctx, p); err == nil {
				if mode.Accepts(n) {
					return n.Path, nil
				}
				err = fmt.Errorf("%s is not a %s", p, mode)
			}
		default:
			err = fmt.Errorf("unknown command %q, type 'help'", cmd)
		}

		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

func (b *Browser) changeDir(ctx context.Context, cwd, name string) (string, error) {
	switch name {
	case "", "/":
		return "/", nil
	case "..":
		return paths.Parent(cwd), nil
	}

	p := paths.Join(cwd, name)
	n, err := b.Stat(ctx, p)
	if err != nil {
		return cwd, err
	}
	if !n.IsDir() {
		return cwd, fmt.Errorf("%s is not a folder", p)
	}
	return p, nil
}

func (b *Browser) printListing(ctx context.Context, out io.Writer, p string) error {
	nodes, err := b.List(ctx, p)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for i := range nodes {
		n := &nodes[i]
		name := n.Name()
		if n.IsDir() {
			name += "/"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, FormatSize(n.Size), n.Atime.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func printNode(out io.Writer, n *models.Node) {
	fmt.Fprintf(out, "path:     %s\n", n.Path)
	fmt.Fprintf(out, "kind:     %s\n", n.Kind)
	fmt.Fprintf(out, "size:     %s\n", FormatSize(n.Size))
	fmt.Fprintf(out, "writable: %t\n", paths.IsWritable(n.Path))
	fmt.Fprintf(out, "modified: %s\n", n.Mtime.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "accessed: %s\n", n.Atime.Local().Format("2006-01-02 15:04:05"))
}

// FormatSize renders a byte count with a binary unit.
func FormatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
