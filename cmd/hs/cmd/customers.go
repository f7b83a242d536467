package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helpscout/helpscout-cli/internal/errutil"
	"github.com/helpscout/helpscout-cli/internal/helpscout"
)

var (
	custQuery   string
	custMailbox string
	custSort    string
	custPage    int

	custFirst string
	custLast  string
	custEmail string
)

var customersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Work with customer records",
}

var customersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers",
	Long: `List customers, optionally filtered.

Examples:
  hs customers list
  hs customers list --query 'email:alice@example.com'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, store := newClient()
		customers, page, err := client.ListCustomers(cmd.Context(), helpscout.ListCustomersOptions{
			Query:   custQuery,
			Mailbox: resolveMailbox(custMailbox, store),
			SortBy:  custSort,
			Page:    custPage,
		})
		if err != nil {
			return err
		}
		return printJSON(struct {
			Customers []helpscout.Customer `json:"customers"`
			Page      helpscout.Page       `json:"page"`
		}{customers, page})
	},
}

var customersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("customer", args[0])
		if err != nil {
			return err
		}
		client, _ := newClient()
		customer, err := client.GetCustomer(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(customer)
	},
}

var customersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a customer record",
	RunE: func(cmd *cobra.Command, args []string) error {
		if custFirst == "" && custLast == "" && custEmail == "" {
			return errutil.NewCLIError("at least one of --first, --last, or --email is required")
		}
		client, _ := newClient()
		req := customerRequest(custFirst, custLast, custEmail)
		if err := client.CreateCustomer(cmd.Context(), req); err != nil {
			return err
		}
		fmt.Println("Customer created.")
		return nil
	},
}

var customersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a customer record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("customer", args[0])
		if err != nil {
			return err
		}
		client, _ := newClient()
		req := customerRequest(custFirst, custLast, custEmail)
		if err := client.UpdateCustomer(cmd.Context(), id, req); err != nil {
			return err
		}
		fmt.Println("Customer updated.")
		return nil
	},
}

func customerRequest(first, last, email string) helpscout.CreateCustomerRequest {
	req := helpscout.CreateCustomerRequest{
		FirstName: first,
		LastName:  last,
	}
	if email != "" {
		req.Emails = []helpscout.CustomerEmail{{Value: email, Type: "work"}}
	}
	return req
}

func init() {
	rootCmd.AddCommand(customersCmd)
	customersCmd.AddCommand(customersListCmd)
	customersCmd.AddCommand(customersGetCmd)
	customersCmd.AddCommand(customersCreateCmd)
	customersCmd.AddCommand(customersUpdateCmd)

	customersListCmd.Flags().StringVar(&custQuery, "query", "", "search query")
	customersListCmd.Flags().StringVar(&custMailbox, "mailbox", "", "mailbox ID (default: stored default mailbox)")
	customersListCmd.Flags().StringVar(&custSort, "sort", "", "sort field")
	customersListCmd.Flags().IntVar(&custPage, "page", 0, "page number")

	for _, c := range []*cobra.Command{customersCreateCmd, customersUpdateCmd} {
		c.Flags().StringVar(&custFirst, "first", "", "first name")
		c.Flags().StringVar(&custLast, "last", "", "last name")
		c.Flags().StringVar(&custEmail, "email", "", "email address")
	}
}
