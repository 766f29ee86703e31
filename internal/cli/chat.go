package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/food-punch-karachi/server/internal/agent/graph/conversations"
	"github.com/food-punch-karachi/server/internal/shop/cart"
	"github.com/food-punch-karachi/server/internal/shop/catalog"
)

func newChatCmd() *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the assistant in the terminal",
		Long:  "Starts an interactive chat. Type /cart to show the cart, /checkout for the WhatsApp link, /reset to start over and /quit to leave.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := buildApp(ctx, appCfg)
			if err != nil {
				return err
			}
			defer a.Close()

			return runChat(ctx, a.chat, a.carts, sessionID, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "terminal", "session id for the conversation and cart")
	return cmd
}

// runChat is the REPL loop; it returns on EOF, /quit or ctx cancellation.
func runChat(ctx context.Context, chat *conversations.MessagesManager, carts cart.Store, sessionID string, in io.Reader, out io.Writer) error {
	transcript, err := chat.Transcript(ctx, sessionID)
	if err != nil {
		return err
	}
	for _, m := range transcript {
		fmt.Fprintf(out, "%s: %s\n", m.Role, m.Text)
	}

	hook := cart.SessionCart{Store: carts, SessionID: sessionID}
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/cart":
			if err := printCart(ctx, out, carts, sessionID); err != nil {
				return err
			}
			continue
		case "/checkout":
			c, err := carts.Get(ctx, sessionID)
			if err != nil {
				return err
			}
			link, err := c.CheckoutLink(catalog.Business())
			if err != nil {
				fmt.Fprintf(out, "%v\n", err)
				continue
			}
			fmt.Fprintln(out, link)
			continue
		case "/reset":
			if err := chat.Reset(ctx, sessionID); err != nil {
				return err
			}
			if err := carts.Clear(ctx, sessionID); err != nil {
				return err
			}
			fmt.Fprintf(out, "model: %s\n", conversations.Greeting)
			continue
		}

		reply, err := chat.Submit(ctx, sessionID, line, hook)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "model: %s\n", reply)
		if err := printCart(ctx, out, carts, sessionID); err != nil {
			return err
		}
	}
}

func printCart(ctx context.Context, out io.Writer, carts cart.Store, sessionID string) error {
	c, err := carts.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if len(c.Lines) == 0 {
		fmt.Fprintln(out, "[cart is empty]")
		return nil
	}
	for _, l := range c.Lines {
		fmt.Fprintf(out, "  %-40s x%-3d Rs. %d\n", l.Item.Name, l.Quantity, l.Item.Price*l.Quantity)
	}
	fmt.Fprintf(out, "  subtotal Rs. %d, delivery Rs. %d, total Rs. %d\n", c.Subtotal(), c.DeliveryFee(), c.Total())
	return nil
}
