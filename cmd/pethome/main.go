// Command pethome es el front-end de consola de la app: maneja sesión,
// mascotas, catálogo de servicios, citas y agenda contra los view-models.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"pethome/internal/app"
	"pethome/internal/config"
	"pethome/internal/platform/logger"
	"pethome/internal/schedule"
	"pethome/internal/viewmodel"
)

func usage() {
	fmt.Fprintf(os.Stderr, `pethome CLI
Usage:
  pethome <cmd> [args]

Commands:
  register   -name <n> -email <e> -password <p> -confirm <p>
  login      -email <e> -password <p>
  logout
  whoami
  pets       [-watch]
  pet-add    -name <n> -species <s> -breed <b> -age <a> -weight <w> -gender <g> -color <c> [-image <url>]
  pet-rm     -id <id>
  services
  book       -service <id> -pet <id> -date <YYYY-MM-DD> -time <slot> [-notes <n>]
  appointments
  cancel     -id <id>
  schedule
`)
	os.Exit(2)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zl, err := logger.New(logger.Options{Level: logger.ParseLevel(cfg.LogLevel), Format: cfg.LogFormat, App: "pethome"})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a, err := app.New(ctx, cfg, zl)
	if err != nil {
		fail(err)
	}

	switch cmd {
	case "register":
		cmdRegister(ctx, a, args)
	case "login":
		cmdLogin(ctx, a, args)
	case "logout":
		if err := a.AuthRepo.Logout(ctx); err != nil {
			fail(err)
		}
		fmt.Println("ok")
	case "whoami":
		cmdWhoami(a)
	case "pets":
		cmdPets(ctx, a, args)
	case "pet-add":
		cmdPetAdd(ctx, a, args)
	case "pet-rm":
		cmdPetRemove(ctx, a, args)
	case "services":
		cmdServices(ctx, a)
	case "book":
		cmdBook(ctx, a, args)
	case "appointments":
		cmdAppointments(ctx, a)
	case "cancel":
		cmdCancel(ctx, a, args)
	case "schedule":
		cmdSchedule(ctx, a)
	default:
		usage()
	}
}

func cmdRegister(ctx context.Context, a *app.App, args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	confirm := fs.String("confirm", "", "password confirmation")
	_ = fs.Parse(args)

	vm := a.RegisterViewModel()
	vm.OnNameChange(*name)
	vm.OnEmailChange(*email)
	vm.OnPasswordChange(*password)
	vm.OnConfirmPasswordChange(*confirm)
	vm.Register(ctx)

	st := vm.State()
	reportFieldErrors(st.NameError, st.EmailError, st.PasswordError, st.ConfirmPasswordError, st.ErrorMessage)
	if !st.IsRegisterSuccessful {
		os.Exit(1)
	}
	fmt.Println("ok")
}

func cmdLogin(ctx context.Context, a *app.App, args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	_ = fs.Parse(args)

	vm := a.LoginViewModel()
	vm.OnEmailChange(*email)
	vm.OnPasswordChange(*password)
	vm.Login(ctx)

	st := vm.State()
	reportFieldErrors(st.EmailError, st.PasswordError, st.ErrorMessage)
	if !st.IsLoginSuccessful {
		os.Exit(1)
	}
	fmt.Println("ok")
}

func cmdWhoami(a *app.App) {
	if !a.Sessions.IsLoggedIn() {
		fmt.Fprintln(os.Stderr, "not logged in")
		os.Exit(1)
	}
	s := a.Sessions.Current()
	fmt.Printf("%s <%s> (id %s)\n", s.Name, s.Email, s.UserID)
}

func cmdPets(ctx context.Context, a *app.App, args []string) {
	requireLogin(a)

	fs := flag.NewFlagSet("pets", flag.ExitOnError)
	watch := fs.Bool("watch", false, "keep printing the list as it changes (local mode)")
	_ = fs.Parse(args)

	vm := a.PetViewModel()

	if *watch {
		// Sigue la lista viva hasta Ctrl-C, sin el timeout global.
		wctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go vm.Run(wctx)
		for list := range vm.WatchPets(wctx) {
			printJSON(list)
		}
		return
	}

	vm.RefreshPets(ctx)
	printJSON(vm.Pets())
}

func cmdPetAdd(ctx context.Context, a *app.App, args []string) {
	requireLogin(a)

	fs := flag.NewFlagSet("pet-add", flag.ExitOnError)
	name := fs.String("name", "", "name")
	species := fs.String("species", "", "species")
	breed := fs.String("breed", "", "breed")
	age := fs.String("age", "", "age in years")
	weight := fs.String("weight", "", "weight in kg")
	gender := fs.String("gender", "", "gender")
	color := fs.String("color", "", "color")
	image := fs.String("image", "", "image url")
	_ = fs.Parse(args)

	vm := a.PetViewModel()
	vm.OnNameChange(*name)
	vm.OnSpeciesChange(*species)
	vm.OnBreedChange(*breed)
	vm.OnAgeChange(*age)
	vm.OnWeightChange(*weight)
	vm.OnGenderChange(*gender)
	vm.OnColorChange(*color)
	if *image != "" {
		vm.OnImageSelected(*image)
	}
	vm.SavePet(ctx)

	st := vm.FormState()
	reportFieldErrors(st.NameError, st.SpeciesError, st.BreedError, st.AgeError,
		st.WeightError, st.GenderError, st.ColorError, st.ErrorMessage)
	if !st.IsSuccess {
		os.Exit(1)
	}
	fmt.Println("ok")
}

func cmdPetRemove(ctx context.Context, a *app.App, args []string) {
	requireLogin(a)

	fs := flag.NewFlagSet("pet-rm", flag.ExitOnError)
	id := fs.String("id", "", "pet id")
	_ = fs.Parse(args)
	if *id == "" {
		fmt.Fprintln(os.Stderr, "need -id")
		os.Exit(1)
	}

	vm := a.PetViewModel()
	vm.DeletePet(ctx, *id)
	if msg := vm.FormState().ErrorMessage; msg != "" {
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(1)
	}
	fmt.Println("ok")
}

func cmdServices(ctx context.Context, a *app.App) {
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Primera emisión del stream del catálogo.
	list := <-a.Services.WatchServices(wctx)
	for _, s := range list {
		fmt.Printf("%s  %-28s %-14s $%.2f (%d min)\n", s.ID, s.Name, s.Category, s.Price, s.Duration)
	}
}

func cmdBook(ctx context.Context, a *app.App, args []string) {
	requireLogin(a)

	fs := flag.NewFlagSet("book", flag.ExitOnError)
	serviceID := fs.String("service", "", "service id")
	petID := fs.String("pet", "", "pet id")
	date := fs.String("date", "", "date YYYY-MM-DD")
	slot := fs.String("time", "", "time slot, e.g. '10:00 AM'")
	notes := fs.String("notes", "", "notes")
	_ = fs.Parse(args)
	if *serviceID == "" {
		fmt.Fprintln(os.Stderr, "need -service")
		os.Exit(1)
	}

	vm := a.ServiceViewModel()
	if *petID != "" {
		vm.OnPetSelected(*petID)
	}
	if *date != "" {
		t, err := time.Parse("2006-01-02", *date)
		if err != nil {
			fmt.Fprintln(os.Stderr, "date must be YYYY-MM-DD")
			os.Exit(1)
		}
		vm.OnDateSelected(t.UnixMilli())
	}
	if *slot != "" {
		vm.OnTimeSelected(*slot)
	}
	if *notes != "" {
		vm.OnNotesChange(*notes)
	}
	vm.CreateAppointment(ctx, *serviceID)

	st := vm.FormState()
	if st.ErrorMessage != "" {
		fmt.Fprintln(os.Stderr, st.ErrorMessage)
		os.Exit(1)
	}
	fmt.Println("ok")
}

func cmdAppointments(ctx context.Context, a *app.App) {
	requireLogin(a)

	list, err := a.Services.ListAppointmentsByUser(ctx, a.Sessions.Current().UserID)
	if err != nil {
		fail(err)
	}
	for _, ap := range list {
		fmt.Printf("%s  %s %s  servicio=%s mascota=%s  [%s]\n",
			ap.ID, viewmodel.FormatDate(ap.Date), ap.Time, ap.ServiceID, ap.PetID, ap.Status)
	}
}

func cmdCancel(ctx context.Context, a *app.App, args []string) {
	requireLogin(a)

	fs := flag.NewFlagSet("cancel", flag.ExitOnError)
	id := fs.String("id", "", "appointment id")
	_ = fs.Parse(args)
	if *id == "" {
		fmt.Fprintln(os.Stderr, "need -id")
		os.Exit(1)
	}

	vm := a.ServiceViewModel()
	if err := vm.CancelAppointment(ctx, *id); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("ok")
}

func cmdSchedule(ctx context.Context, a *app.App) {
	requireLogin(a)

	vm := a.ScheduleViewModel()

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go vm.Run(wctx)

	// Espera la primera emisión del feed.
	for loading := range vm.Loading(wctx) {
		if !loading {
			break
		}
	}

	for _, item := range vm.ItemsNow() {
		switch e := item.(type) {
		case schedule.AppointmentEntry:
			fmt.Printf("%s %s  %s (%s) con %s  [%s]\n",
				viewmodel.FormatDate(e.DateTime), e.Time, e.ServiceName, e.ServiceCategory, e.PetName, e.Status)
		case schedule.MedicineEntry:
			fmt.Printf("%s %s  medicina %s (%s) para %s\n",
				viewmodel.FormatDate(e.DateTime), e.Time, e.MedicineName, e.Dosage, e.PetName)
		}
	}
}

// ---- helpers ----

func requireLogin(a *app.App) {
	if !a.Sessions.IsLoggedIn() {
		fmt.Fprintln(os.Stderr, "not logged in")
		os.Exit(1)
	}
}

func reportFieldErrors(msgs ...string) {
	for _, m := range msgs {
		if m != "" {
			fmt.Fprintln(os.Stderr, m)
		}
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
