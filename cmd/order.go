package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/littlelemon/tablebook/internal/order"
)

func newOrderCmd() *cobra.Command {
	var (
		add    []string
		remove []int
		set    []string
		typ    string
	)

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Build a cart from menu item ids and print the total",
		Example: "  littlelemon order --add 1,1,3 --set 3=2 --type pickup\n" +
			"  littlelemon order --add 1,2 --remove 2",
		RunE: func(cmd *cobra.Command, args []string) error {
			menu := order.DefaultMenu()
			cart := order.NewCart()

			t, err := order.ParseType(typ)
			if err != nil {
				return err
			}
			cart.SetType(t)

			for _, raw := range add {
				id, err := strconv.Atoi(strings.TrimSpace(raw))
				if err != nil {
					return fmt.Errorf("--add %q: not a menu item id", raw)
				}
				item, err := menu.Find(id)
				if err != nil {
					return err
				}
				cart.AddItem(item)
			}
			for _, raw := range set {
				id, qty, err := parseSet(raw)
				if err != nil {
					return err
				}
				cart.UpdateQuantity(id, qty)
			}
			for _, id := range remove {
				cart.RemoveItem(id)
			}
			return printCart(cmd.OutOrStdout(), cart)
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&add, "add", nil, "menu item ids to add, repeat an id to add it again")
	f.IntSliceVar(&remove, "remove", nil, "menu item ids to remove")
	f.StringSliceVar(&set, "set", nil, "id=quantity pairs; a quantity below 1 removes the line")
	f.StringVar(&typ, "type", string(order.Delivery), "delivery or pickup")
	return cmd
}

func parseSet(raw string) (id, qty int, err error) {
	k, v, ok := strings.Cut(raw, "=")
	if !ok {
		return 0, 0, fmt.Errorf("--set %q: want id=quantity", raw)
	}
	if id, err = strconv.Atoi(strings.TrimSpace(k)); err != nil {
		return 0, 0, fmt.Errorf("--set %q: bad id", raw)
	}
	if qty, err = strconv.Atoi(strings.TrimSpace(v)); err != nil {
		return 0, 0, fmt.Errorf("--set %q: bad quantity", raw)
	}
	return id, qty, nil
}

func printCart(w io.Writer, cart *order.Cart) error {
	fmt.Fprintf(w, "Order type: %s\n", cart.Type())
	if cart.Empty() {
		fmt.Fprintln(w, "Your cart is empty")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, l := range cart.Lines() {
		fmt.Fprintf(tw, "%d x\t%s\t%s\n", l.Quantity, l.Name, l.Subtotal())
	}
	fmt.Fprintf(tw, "\tTotal (%d items)\t%s\n", cart.Count(), cart.Total())
	return tw.Flush()
}
