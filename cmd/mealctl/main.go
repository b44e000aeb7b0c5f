// Package main provides the meal planner CLI client.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/snedea/meal-planner-app/internal/nutrition"
	"github.com/snedea/meal-planner-app/pkg/client"
)

// Global configuration
var (
	baseURL   string
	timeout   time.Duration
	credsPath string
	asJSON    bool
)

func init() {
	defaultURL := os.Getenv("MEALCTL_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8000"
	}
	flag.StringVar(&baseURL, "url", defaultURL, "Meal planner server URL")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	flag.StringVar(&credsPath, "credentials", "", "Credentials file (default ~/.config/mealctl/credentials.json)")
	flag.BoolVar(&asJSON, "json", false, "Print raw JSON")
}

func main() {
	flag.Parse()

	if len(flag.Args()) < 1 {
		printUsage()
		os.Exit(1)
	}

	cmd := flag.Args()[0]
	args := flag.Args()[1:]

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := newClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	commands := map[string]func(context.Context, *client.Client, []string) error{
		"health":        cmdHealth,
		"register":      cmdRegister,
		"login":         cmdLogin,
		"logout":        cmdLogout,
		"me":            cmdMe,
		"goals":         cmdGoals,
		"search":        cmdSearch,
		"food":          cmdFood,
		"log":           cmdLog,
		"delete":        cmdDelete,
		"day":           cmdDay,
		"range":         cmdRange,
		"recipes":       cmdRecipes,
		"recipe":        cmdRecipe,
		"recipe-create": cmdRecipeCreate,
		"recipe-delete": cmdRecipeDelete,
		"watch":         cmdWatch,
	}

	run, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err := run(ctx, c, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Meal Planner CLI")
	fmt.Println()
	fmt.Println("Usage: mealctl [options] <command> [args]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register <email> [first] [last]   Create an account")
	fmt.Println("  login <email>                     Log in and store the session")
	fmt.Println("  logout                            Forget the stored session")
	fmt.Println("  me                                Show your profile")
	fmt.Println("  goals [--calories=N ...]          Show or set nutrition targets")
	fmt.Println("  search [-i] [--limit=N] <query>   Search foods (-i: interactive)")
	fmt.Println("  food <id|barcode>                 Show a food")
	fmt.Println("  log --food=<id>|--recipe=<id> --qty=N --meal=<type> [--date=D]")
	fmt.Println("                                    Log a meal")
	fmt.Println("  delete <log_id>                   Delete a meal log")
	fmt.Println("  day [date]                        Show a day's meals and progress")
	fmt.Println("  range <start> <end>               Show daily totals and averages")
	fmt.Println("  recipes [--page=N]                List your recipes")
	fmt.Println("  recipe <id>                       Show a recipe")
	fmt.Println("  recipe-create <file>              Create a recipe from a JSON file")
	fmt.Println("  recipe-delete <id>                Delete a recipe")
	fmt.Println("  watch                             Stream live summary updates")
	fmt.Println("  health                            Check server health")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
}

func newClient() (*client.Client, error) {
	path := credsPath
	if path == "" {
		p, err := client.DefaultTokenPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return client.New(baseURL,
		client.WithTimeout(timeout),
		client.WithTokenStore(client.NewFileTokenStore(path)),
	), nil
}

func printJSON(v interface{}) {
	output, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(output))
}

// readPassword reads one line from stdin. The password is echoed.
func readPassword(prompt string) (string, error) {
	if env := os.Getenv("MEALCTL_PASSWORD"); env != "" {
		return env, nil
	}
	fmt.Fprint(os.Stderr, prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func parseID(s, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s id: %s", what, s)
	}
	return id, nil
}

func cmdHealth(ctx context.Context, c *client.Client, args []string) error {
	h, err := c.Health(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Status: %s\n", h.Status)
	fmt.Printf("Version: %s\n", h.Version)
	return nil
}

func cmdRegister(ctx context.Context, c *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: register <email> [first_name] [last_name]")
	}
	req := client.RegisterRequest{Email: args[0]}
	if len(args) > 1 {
		req.FirstName = args[1]
	}
	if len(args) > 2 {
		req.LastName = args[2]
	}

	pw, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	req.Password = pw

	u, err := c.Register(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("Registered %s (%s)\n", u.Email, u.ID)
	fmt.Println("Run 'mealctl login' to start a session.")
	return nil
}

func cmdLogin(ctx context.Context, c *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: login <email>")
	}
	pw, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	auth := client.NewAuthState(c)
	if err := auth.Login(ctx, args[0], pw); err != nil {
		return err
	}
	fmt.Printf("Logged in as %s\n", auth.User().Email)
	return nil
}

func cmdLogout(ctx context.Context, c *client.Client, args []string) error {
	if err := c.Logout(); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}

func cmdMe(ctx context.Context, c *client.Client, args []string) error {
	u, err := c.Me(ctx)
	if err != nil {
		return err
	}
	if asJSON {
		printJSON(u)
		return nil
	}

	fmt.Printf("Email: %s\n", u.Email)
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		fmt.Printf("Name: %s\n", name)
	}
	if u.HeightCm != nil && u.WeightKg != nil {
		fmt.Printf("Height: %.0f cm  Weight: %.1f kg\n", *u.HeightCm, *u.WeightKg)
	}
	printTargets(u.Targets())
	return nil
}

func printTargets(t nutrition.Targets) {
	fmt.Printf("Targets: %.0f kcal, %.0fg protein, %.0fg carbs, %.0fg fats\n",
		t.Calories, t.ProteinG, t.CarbsG, t.FatsG)
}

func cmdGoals(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("goals", flag.ExitOnError)
	calories := fs.Float64("calories", 0, "Daily calorie target")
	protein := fs.Float64("protein", 0, "Protein target (g)")
	carbs := fs.Float64("carbs", 0, "Carbs target (g)")
	fats := fs.Float64("fats", 0, "Fats target (g)")
	water := fs.Int("water", 0, "Water target (ml)")
	fs.Parse(args)

	var req client.GoalsUpdate
	set := 0
	fs.Visit(func(f *flag.Flag) {
		set++
		switch f.Name {
		case "calories":
			req.DailyCalorieTarget = calories
		case "protein":
			req.ProteinTargetG = protein
		case "carbs":
			req.CarbsTargetG = carbs
		case "fats":
			req.FatsTargetG = fats
		case "water":
			req.WaterTargetMl = water
		}
	})

	if set == 0 {
		s, err := c.Suggestions(ctx)
		if err != nil {
			return err
		}
		if asJSON {
			printJSON(s)
			return nil
		}
		printTargets(s.CurrentTargets)
		if s.BMI > 0 {
			fmt.Printf("BMI: %.1f\n", s.BMI)
		}
		if s.TDEE > 0 {
			fmt.Printf("Estimated TDEE: %.0f kcal\n", s.TDEE)
			fmt.Printf("Suggested target: %.0f kcal\n", s.SuggestedCalories)
		}
		return nil
	}

	u, err := c.UpdateGoals(ctx, req)
	if err != nil {
		return err
	}
	printTargets(u.Targets())
	return nil
}

func cmdSearch(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	interactive := fs.Bool("i", false, "Interactive search; each line typed is a new query")
	limit := fs.Int("limit", 20, "Maximum results")
	fs.Parse(args)

	if *interactive {
		return interactiveSearch(ctx, c, *limit)
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: search [-i] [--limit=N] <query>")
	}

	foods := client.NewFoodState(c)
	if err := foods.Search(ctx, strings.Join(fs.Args(), " "), *limit); err != nil {
		return err
	}
	if asJSON {
		printJSON(foods.Results())
		return nil
	}
	printFoods(os.Stdout, foods.Results())
	return nil
}

func interactiveSearch(ctx context.Context, c *client.Client, limit int) error {
	s := c.FoodSearcher(limit, client.DefaultSearchDelay)
	defer s.Close()

	foods := client.NewFoodState(c)
	go func() {
		for r := range s.Results() {
			foods.Apply(r)
			switch {
			case r.Err != nil:
				fmt.Fprintf(os.Stderr, "search failed: %v\n", r.Err)
			case r.Query == "":
			default:
				fmt.Printf("\nResults for %q:\n", r.Query)
				printFoods(os.Stdout, r.Foods)
			}
			fmt.Print("> ")
		}
	}()

	fmt.Println("Type to search, Ctrl-D to quit.")
	fmt.Print("> ")

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			s.Query(line)
		}
	}
}

func cmdFood(ctx context.Context, c *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: food <id|barcode>")
	}

	var (
		f   *client.Food
		err error
	)
	if id, perr := uuid.Parse(args[0]); perr == nil {
		f, err = c.GetFood(ctx, id)
	} else {
		f, err = c.FoodByBarcode(ctx, args[0])
	}
	if err != nil {
		return err
	}
	if asJSON {
		printJSON(f)
		return nil
	}
	printFood(os.Stdout, *f)
	return nil
}

func cmdLog(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("log", flag.ExitOnError)
	foodID := fs.String("food", "", "Food id")
	recipeID := fs.String("recipe", "", "Recipe id")
	qty := fs.Float64("qty", 1, "Quantity")
	unit := fs.String("unit", "", "Unit (default: the food's serving unit)")
	meal := fs.String("meal", "", "Meal type: breakfast, lunch, dinner, snack")
	date := fs.String("date", time.Now().Format("2006-01-02"), "Date (YYYY-MM-DD)")
	at := fs.String("time", "", "Time (HH:MM)")
	notes := fs.String("notes", "", "Notes")
	fs.Parse(args)

	req := client.MealLogRequest{
		Quantity:   *qty,
		Unit:       *unit,
		MealType:   nutrition.MealType(strings.ToLower(*meal)),
		LoggedDate: *date,
		Notes:      *notes,
	}
	if *foodID != "" {
		id, err := parseID(*foodID, "food")
		if err != nil {
			return err
		}
		req.FoodID = &id
	}
	if *recipeID != "" {
		id, err := parseID(*recipeID, "recipe")
		if err != nil {
			return err
		}
		req.RecipeID = &id
	}
	if *at != "" {
		req.LoggedTime = at
	}

	day := client.NewMealLogState(c)
	if err := day.Load(ctx, req.LoggedDate); err != nil {
		return err
	}
	l, err := day.Add(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("Logged %s: %.0f kcal (%s)\n", l.MealType, l.Calories, l.ID)
	fmt.Println(remainingLine(day.Summary()))
	return nil
}

func cmdDelete(ctx context.Context, c *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: delete <log_id>")
	}
	id, err := parseID(args[0], "meal log")
	if err != nil {
		return err
	}
	if err := c.DeleteMealLog(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Meal log %s deleted\n", id)
	return nil
}

func cmdDay(ctx context.Context, c *client.Client, args []string) error {
	date := time.Now().Format("2006-01-02")
	if len(args) > 0 {
		date = args[0]
	}

	day := client.NewMealLogState(c)
	if err := day.Load(ctx, date); err != nil {
		return err
	}
	if asJSON {
		printJSON(client.DayLogs{Logs: day.Logs(), Summary: day.Summary()})
		return nil
	}
	printDay(os.Stdout, date, day.Groups(), day.Summary())
	return nil
}

func cmdRange(ctx context.Context, c *client.Client, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: range <start> <end>")
	}
	rs, err := c.RangeSummary(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	if asJSON {
		printJSON(rs)
		return nil
	}
	printRange(os.Stdout, *rs)
	return nil
}

func cmdRecipes(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("recipes", flag.ExitOnError)
	page := fs.Int("page", 1, "Page")
	limit := fs.Int("limit", 20, "Page size")
	fs.Parse(args)

	recipes := client.NewRecipeState(c)
	if err := recipes.List(ctx, *page, *limit); err != nil {
		return err
	}
	if asJSON {
		printJSON(recipes.Recipes())
		return nil
	}

	list := recipes.Recipes()
	if len(list) == 0 {
		fmt.Println("No recipes found")
		return nil
	}

	fmt.Printf("%-36s %-30s %8s %12s\n", "ID", "NAME", "SERVINGS", "KCAL/SERVING")
	fmt.Println(strings.Repeat("-", 89))
	for _, r := range list {
		fmt.Printf("%-36s %-30s %8d %12.0f\n", r.ID, truncate(r.Name, 30), r.Servings, r.PerServing.Calories)
	}
	fmt.Printf("\nTotal: %d recipes\n", recipes.Total())
	return nil
}

func cmdRecipe(ctx context.Context, c *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: recipe <id>")
	}
	id, err := parseID(args[0], "recipe")
	if err != nil {
		return err
	}
	r, err := c.GetRecipe(ctx, id)
	if err != nil {
		return err
	}
	if asJSON {
		printJSON(r)
		return nil
	}
	printRecipe(os.Stdout, *r)
	return nil
}

func cmdRecipeCreate(ctx context.Context, c *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: recipe-create <json_file>")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	var req client.RecipeRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	r, err := client.NewRecipeState(c).Create(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("Recipe created: %s\n", r.ID)
	printRecipe(os.Stdout, *r)
	return nil
}

func cmdRecipeDelete(ctx context.Context, c *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: recipe-delete <id>")
	}
	id, err := parseID(args[0], "recipe")
	if err != nil {
		return err
	}
	if err := c.DeleteRecipe(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Recipe %s deleted\n", id)
	return nil
}

func cmdWatch(ctx context.Context, c *client.Client, args []string) error {
	fmt.Println("Watching for updates, Ctrl-C to stop.")
	return c.WatchSummaries(ctx, func(ev client.Event) {
		if asJSON {
			printJSON(ev)
			return
		}
		printEvent(os.Stdout, ev)
	})
}
