package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/rhinobytesoftware/ilreader/opcode"
)

func newOpcodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "opcodes [mnemonic|0xVALUE]...",
		Short: "List the opcode table or look up single entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ops := opcode.All()
			if len(args) > 0 {
				ops = make([]opcode.Opcode, 0, len(args))
				for _, arg := range args {
					op, err := lookupOpcode(arg)
					if err != nil {
						return err
					}
					ops = append(ops, op)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), opcodeTable(ops))
			return nil
		},
	}
}

// lookupOpcode accepts a mnemonic or an encoded value such as 0x2A or 0xFE01.
func lookupOpcode(arg string) (opcode.Opcode, error) {
	if hex, ok := strings.CutPrefix(strings.ToLower(arg), "0x"); ok {
		v, err := strconv.ParseUint(hex, 16, 16)
		if err != nil {
			return opcode.Opcode{}, fmt.Errorf("bad opcode value %q", arg)
		}
		op := opcode.Lookup(uint16(v))
		if op.Unknown() {
			return opcode.Opcode{}, fmt.Errorf("%s is not an assigned opcode", op)
		}
		return op, nil
	}
	op, ok := opcode.ByName(arg)
	if !ok {
		return opcode.Opcode{}, fmt.Errorf("unknown mnemonic %q", arg)
	}
	return op, nil
}

func opcodeTable(ops []opcode.Opcode) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("value", "mnemonic", "operand", "flow", "description")
	for _, op := range ops {
		value := fmt.Sprintf("0x%02X", op.Value)
		if op.TwoByte() {
			value = fmt.Sprintf("0x%04X", op.Value)
		}
		t.Row(value, op.Name, op.Operand.String(), op.Flow.String(), op.Description)
	}
	return t.String()
}
