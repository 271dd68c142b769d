package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/viant/ossim/service/disk"
)

type LsCommand struct{ info }

func NewLsCommand() *LsCommand {
	return &LsCommand{info{name: "ls", aliases: []string{"listar", "lista"}, usage: "ls", description: "Lists the files on the virtual disk."}}
}

func (c *LsCommand) Execute(ctx context.Context, sh *Shell, args []string, stdout io.Writer) error {
	if sh.disk == nil {
		return ErrUnavailable
	}
	names, err := sh.disk.List(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(stdout, name)
	}
	return nil
}

type CatCommand struct{ info }

func NewCatCommand() *CatCommand {
	return &CatCommand{info{name: "cat", aliases: []string{"ver", "mostrar"}, usage: "cat <file>", description: "Prints the content of a file."}}
}

func (c *CatCommand) Execute(ctx context.Context, sh *Shell, args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if sh.disk == nil {
		return ErrUnavailable
	}
	content, err := sh.disk.Read(ctx, args[0])
	if errors.Is(err, disk.ErrFileNotFound) {
		fmt.Fprintln(stdout, "file not found")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, content)
	return nil
}

type WriteCommand struct{ info }

func NewWriteCommand() *WriteCommand {
	return &WriteCommand{info{name: "write", aliases: []string{"escribir"}, usage: "write <file> <content>", description: "Creates or replaces a file."}}
}

func (c *WriteCommand) Execute(ctx context.Context, sh *Shell, args []string, stdout io.Writer) error {
	if len(args) < 2 {
		return ErrUsage
	}
	if sh.disk == nil {
		return ErrUnavailable
	}
	if err := sh.disk.Write(ctx, args[0], strings.Join(args[1:], " ")); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "written")
	return nil
}

type RmCommand struct{ info }

func NewRmCommand() *RmCommand {
	return &RmCommand{info{name: "rm", aliases: []string{"borrar", "eliminar"}, usage: "rm <file>", description: "Removes a file from the virtual disk."}}
}

func (c *RmCommand) Execute(ctx context.Context, sh *Shell, args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if sh.disk == nil {
		return ErrUnavailable
	}
	deleted, err := sh.disk.Delete(ctx, args[0])
	if err != nil {
		return err
	}
	if deleted {
		fmt.Fprintln(stdout, "deleted")
	} else {
		fmt.Fprintln(stdout, "no such file")
	}
	return nil
}

type FormatCommand struct{ info }

func NewFormatCommand() *FormatCommand {
	return &FormatCommand{info{name: "format", aliases: []string{"formatear"}, usage: "format", description: "Erases every file on the virtual disk."}}
}

func (c *FormatCommand) Execute(ctx context.Context, sh *Shell, args []string, stdout io.Writer) error {
	if sh.disk == nil {
		return ErrUnavailable
	}
	if err := sh.disk.Format(ctx); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "disk formatted")
	return nil
}
