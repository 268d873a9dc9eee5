// Package events implements the commands inspecting the stored events.
package events

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/hackbot/hackbot/cmd"
	"github.com/hackbot/hackbot/pkg/backend"
	"github.com/hackbot/hackbot/pkg/proto"
	"github.com/spf13/cobra"
)

// Command is the events command.
var Command = &cobra.Command{
	Use:                "events",
	Aliases:            []string{"event"},
	Short:              "Inspect the registered events",
	PersistentPreRunE:  cmd.InitBackendContext,
	PersistentPostRunE: cmd.CloseStoreContext,
}

func init() {
	Command.AddCommand(
		listCommand(),
		showCommand(),
		exportCommand(),
	)
}

func listCommand() *cobra.Command {
	var guild string
	var ojson bool

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List events",
		Args:    cobra.NoArgs,
		RunE: func(co *cobra.Command, _ []string) error {
			ctx := co.Context()
			be := backend.FromContext(ctx)

			guilds := be.Guilds()
			if guild != "" {
				id, err := proto.ParseID(guild)
				if err != nil {
					return fmt.Errorf("guild %q: %w", guild, err)
				}
				guilds = []proto.ID{id}
			}

			events := make([]proto.Event, 0)
			for _, g := range guilds {
				events = append(events, be.Events(ctx, g)...)
			}

			if ojson {
				return writeJSON(co, events)
			}
			for _, e := range events {
				co.Printf("%s\t%s\t%s\t%d teams\t%s\n",
					e.GuildID, e.ID, e.Name, e.Teams.Len(), humanize.Time(e.StartTime))
			}
			return nil
		},
	}

	listCmd.Flags().StringVarP(&guild, "guild", "g", "", "only list the events of this guild")
	listCmd.Flags().BoolVar(&ojson, "json", false, "output as JSON")

	return listCmd
}

func showCommand() *cobra.Command {
	var ojson bool

	showCmd := &cobra.Command{
		Use:   "show GUILD EVENT",
		Short: "Show an event and its teams",
		Args:  cobra.ExactArgs(2),
		RunE: func(co *cobra.Command, args []string) error {
			ctx := co.Context()
			be := backend.FromContext(ctx)

			guild, err := proto.ParseID(args[0])
			if err != nil {
				return fmt.Errorf("guild %q: %w", args[0], err)
			}
			id, err := proto.ParseID(args[1])
			if err != nil {
				return fmt.Errorf("event %q: %w", args[1], err)
			}

			e, ok := be.Get(ctx, guild, id)
			if !ok {
				return proto.ErrEventNotFound
			}

			if ojson {
				return writeJSON(co, e)
			}

			capacity := "none"
			if c, ok := e.Teams.Capacity(); ok {
				capacity = fmt.Sprint(c)
			}
			co.Println("Name:", e.Name)
			co.Println("Starts:", e.StartTime.Format("2006-01-02 15:04"), "("+humanize.Time(e.StartTime)+")")
			co.Println("Capacity:", capacity)
			co.Println()
			co.Println(e.Render())
			return nil
		},
	}

	showCmd.Flags().BoolVar(&ojson, "json", false, "output as JSON")

	return showCmd
}

// export is the document written by the export command.
type export struct {
	Events     []proto.Event    `json:"events"`
	Preference proto.Preference `json:"preference"`
}

func exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export every event and the hackathon preference as JSON",
		Args:  cobra.NoArgs,
		RunE: func(co *cobra.Command, _ []string) error {
			ctx := co.Context()
			be := backend.FromContext(ctx)

			doc := export{
				Events:     make([]proto.Event, 0),
				Preference: be.Preference(ctx),
			}
			for _, g := range be.Guilds() {
				doc.Events = append(doc.Events, be.Events(ctx, g)...)
			}
			return writeJSON(co, doc)
		},
	}
}

func writeJSON(co *cobra.Command, v any) error {
	bts, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	co.Println(string(bts))
	return nil
}
