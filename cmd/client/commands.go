package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/harrylevesque/tododemo/internal/cart"
	"github.com/harrylevesque/tododemo/internal/client"
	"github.com/harrylevesque/tododemo/internal/config"
	"github.com/harrylevesque/tododemo/internal/utils"
	"github.com/spf13/cobra"
)

type app struct {
	configPath string
	server     string
	cartDB     string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "tododemo",
		Short:         "Client for the to-do demo API and a local shopping cart",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if a.server != "" {
				cfg.Client.Server = a.server
			}
			if a.cartDB != "" {
				cfg.Client.CartDB = a.cartDB
			}
			a.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a config file")
	root.PersistentFlags().StringVar(&a.server, "server", "", "Override server base URL")
	root.PersistentFlags().StringVar(&a.cartDB, "cart-db", "", "Override cart database path")

	root.AddCommand(a.todoCmd(), a.loginCmd(), a.usersCmd(), a.cartCmd())
	return root
}

func (a *app) api() *client.Client {
	return client.New(a.cfg.Client.Server, nil)
}

func printEnvelope(w io.Writer, env client.Envelope) error {
	fmt.Fprintln(w, env.Message)
	if !env.Success {
		return fmt.Errorf("request rejected")
	}
	return nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("index must be an integer: %q", s)
	}
	return i, nil
}

func (a *app) todoCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "todo", Short: "Manage the server's to-do list"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List to-dos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			todos, err := a.api().Todos(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(todos) == 0 {
				fmt.Fprintln(out, "(empty)")
			}
			for i, t := range todos {
				mark := " "
				if t.Completed {
					mark = "x"
				}
				fmt.Fprintf(out, "%d [%s] %s  (%s)\n", i, mark, t.Title, t.ID)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <title...>",
		Short: "Add a to-do",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.api().AddTodo(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printEnvelope(cmd.OutOrStdout(), env)
		},
	})

	var byID bool
	rm := &cobra.Command{
		Use:   "rm <index|id>",
		Short: "Delete one to-do",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var env client.Envelope
			var err error
			if byID {
				env, err = a.api().DeleteTodoByID(cmd.Context(), args[0])
			} else {
				idx, perr := parseIndex(args[0])
				if perr != nil {
					return perr
				}
				env, err = a.api().DeleteTodo(cmd.Context(), idx)
			}
			if err != nil {
				return err
			}
			return printEnvelope(cmd.OutOrStdout(), env)
		},
	}
	rm.Flags().BoolVar(&byID, "id", false, "Treat the argument as a stable id")
	cmd.AddCommand(rm)

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every to-do",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.api().ClearTodos(cmd.Context())
			if err != nil {
				return err
			}
			return printEnvelope(cmd.OutOrStdout(), env)
		},
	})

	for _, c := range []struct {
		use, short string
		done       bool
	}{
		{"done <index>", "Mark a to-do completed", true},
		{"undo <index>", "Mark a to-do not completed", false},
	} {
		done := c.done
		cmd.AddCommand(&cobra.Command{
			Use:   c.use,
			Short: c.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				idx, err := parseIndex(args[0])
				if err != nil {
					return err
				}
				env, err := a.api().SetCompleted(cmd.Context(), idx, done)
				if err != nil {
					return err
				}
				return printEnvelope(cmd.OutOrStdout(), env)
			},
		})
	}
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Check a username/password pair against the mock login",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.api().Login(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printEnvelope(cmd.OutOrStdout(), env)
		},
	}
}

func (a *app) usersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users [id]",
		Short: "List users, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				id, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("id must be an integer: %q", args[0])
				}
				u, err := a.api().User(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%d %s <%s>\n", u.ID, u.Name, u.Email)
				return nil
			}
			users, err := a.api().Users(cmd.Context())
			if err != nil {
				return err
			}
			for _, u := range users {
				fmt.Fprintf(out, "%d %s <%s>\n", u.ID, u.Name, u.Email)
			}
			return nil
		},
	}
}

// withCart opens the persisted cart, runs fn and closes the database.
func (a *app) withCart(fn func(*cart.Cart) error) error {
	p, err := cart.OpenBolt(a.cfg.Client.CartDB)
	if err != nil {
		return err
	}
	defer p.Close()

	logger, closer, err := utils.NewLogger(utils.LogOptions{Level: a.cfg.Log.Level, File: a.cfg.Log.File})
	if err != nil {
		return err
	}
	defer closer.Close()

	c, err := cart.Restore(p, logger)
	if err != nil {
		return err
	}
	return fn(c)
}

func printCart(w io.Writer, c *cart.Cart) {
	for _, it := range c.Items() {
		fmt.Fprintf(w, "%d %s x%d\n", it.ID, it.Name, it.Quantity)
	}
	fmt.Fprintf(w, "total items: %d\n", c.TotalItems())
}

func (a *app) cartCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cart", Short: "Manage the local shopping cart"}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show cart lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCart(func(c *cart.Cart) error {
				printCart(cmd.OutOrStdout(), c)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <id> <name...>",
		Short: "Add one unit of a product",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("id must be an integer: %q", args[0])
			}
			return a.withCart(func(c *cart.Cart) error {
				if err := c.AddItem(cart.Product{ID: id, Name: strings.Join(args[1:], " ")}); err != nil {
					return err
				}
				printCart(cmd.OutOrStdout(), c)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a product line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("id must be an integer: %q", args[0])
			}
			return a.withCart(func(c *cart.Cart) error {
				c.RemoveItem(id)
				printCart(cmd.OutOrStdout(), c)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCart(func(c *cart.Cart) error {
				c.Clear()
				printCart(cmd.OutOrStdout(), c)
				return nil
			})
		},
	})
	return cmd
}
