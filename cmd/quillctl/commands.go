package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/seed"
	"quill/internal/service"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openDB() (*config.Config, *gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	dialector, err := database.Dialector(cfg)
	if err != nil {
		return nil, nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: database.NewGormLogger(middleware.Logger, logger.Warn),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return cfg, db, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, db, err := openDB()
			if err != nil {
				return err
			}
			if err := database.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	var opts seed.Options

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo users and posts in every publication state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, db, err := openDB()
			if err != nil {
				return err
			}
			if cfg.IsProduction() {
				return fmt.Errorf("refusing to seed a production database")
			}
			summary, err := seed.NewFactory(db, opts).Run(cmd.Context(), time.Now().UTC())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created %d users (password %q)\n", summary.Users, seed.DefaultPassword)
			for _, state := range []models.PostState{
				models.PostStatePublished, models.PostStateScheduled, models.PostStateDraft, models.PostStateUnscheduled,
			} {
				fmt.Fprintf(out, "  %-12s %d\n", state, summary.Posts[state])
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Users, "users", 3, "number of users to create")
	cmd.Flags().IntVar(&opts.PostsPerUser, "posts-per-user", 8, "number of posts per user")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed for reproducible content (0 = random)")
	return cmd
}

func postsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Inspect posts and their publication state",
	}
	cmd.AddCommand(postsListCmd(), postsStateCmd(), postsWatchCmd())
	return cmd
}

func newPostService(db *gorm.DB) *service.PostService {
	return service.NewPostService(repository.NewPostRepository(db), nil)
}

func postsListCmd() *cobra.Command {
	var limit, offset, page int
	var publishedOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts with their derived state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkListFlags(cmd, publishedOnly); err != nil {
				return err
			}
			_, db, err := openDB()
			if err != nil {
				return err
			}
			svc := newPostService(db)

			var posts []*models.Post
			if publishedOnly {
				result, err := svc.ListPublished(cmd.Context(), page)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Page %d of %d (%d published)\n",
					result.CurrentPage, result.LastPage, result.Total)
				posts = result.Data
			} else {
				posts, err = svc.ListAllPosts(cmd.Context(), limit, offset)
				if err != nil {
					return err
				}
			}
			printPosts(cmd.OutOrStdout(), posts, svc.Now())
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of posts")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of posts to skip")
	cmd.Flags().BoolVar(&publishedOnly, "published", false, "show only what readers see, one page at a time")
	cmd.Flags().IntVar(&page, "page", 1, "page of the published list (with --published)")
	return cmd
}

// checkListFlags rejects flags that the chosen listing would ignore.
func checkListFlags(cmd *cobra.Command, publishedOnly bool) error {
	flags := cmd.Flags()
	if publishedOnly {
		if flags.Changed("limit") || flags.Changed("offset") {
			return fmt.Errorf("--published lists pages of %d posts; use --page instead of --limit/--offset", service.PostsPerPage)
		}
		return nil
	}
	if flags.Changed("page") {
		return fmt.Errorf("--page requires --published")
	}
	return nil
}

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect user accounts",
	}
	cmd.AddCommand(usersListCmd())
	return cmd
}

func usersListCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users, oldest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, db, err := openDB()
			if err != nil {
				return err
			}
			users, err := repository.NewUserRepository(db).List(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}
			printUsers(cmd.OutOrStdout(), users)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of users")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of users to skip")
	return cmd
}

func postsStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state <id>",
		Short: "Explain whether a post is visible to readers right now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil || id == 0 {
				return fmt.Errorf("invalid post id %q", args[0])
			}
			_, db, err := openDB()
			if err != nil {
				return err
			}

			post, err := repository.NewPostRepository(db).GetByID(cmd.Context(), uint(id))
			if err != nil {
				return err
			}
			now := time.Now().UTC()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "post %d by user %d\n", post.ID, post.UserID)
			fmt.Fprintf(out, "  state:        %s\n", post.State(now))
			fmt.Fprintf(out, "  visible:      %t\n", post.IsPublished(now))
			fmt.Fprintf(out, "  is_draft:     %t\n", post.IsDraft)
			fmt.Fprintf(out, "  published_at: %s\n", formatTime(post.PublishedAt))
			return nil
		},
	}
}

func printPosts(out io.Writer, posts []*models.Post, now time.Time) {
	fmt.Fprintf(out, "%-6s  %-12s  %-20s  %-16s  %s\n", "ID", "State", "Published At", "Author", "Title")
	for _, p := range posts {
		fmt.Fprintf(out, "%-6d  %-12s  %-20s  %-16s  %s\n",
			p.ID, p.State(now), formatTime(p.PublishedAt), p.User.Username, truncate(p.Title, 60))
	}
}

func printUsers(out io.Writer, users []models.User) {
	fmt.Fprintf(out, "%-6s  %-30s  %s\n", "ID", "Username", "Joined")
	for _, u := range users {
		fmt.Fprintf(out, "%-6d  %-30s  %s\n", u.ID, u.Username, u.CreatedAt.UTC().Format(time.RFC3339))
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
