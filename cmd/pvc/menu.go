package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pvc-cinemas/pvc/internal/config"
	"github.com/pvc-cinemas/pvc/internal/model"
	"github.com/pvc-cinemas/pvc/internal/repository"
	"github.com/pvc-cinemas/pvc/internal/service"
)

// app holds the wired services and the interactive session state. The
// session is carried as a signed token and re-verified before every
// authenticated action, so an expired session drops the caller back to
// the main menu instead of acting on stale identity.
type app struct {
	ctx      context.Context
	cfg      config.Config
	identity *service.IdentityService
	booking  *service.BookingService
	in       *bufio.Scanner
	session  string
}

func (a *app) run() {
	fmt.Println(titleStyle.Render("Welcome to PVC Cinemas"))
	for {
		fmt.Println()
		fmt.Println("1. User login")
		fmt.Println("2. User registration")
		fmt.Println("3. Admin login")
		fmt.Println("4. Exit")
		switch a.prompt("Select an option: ") {
		case "1", "3":
			a.login()
		case "2":
			a.register()
		case "4":
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Println("Invalid option!")
		}
	}
}

// current re-verifies the session token. A failure clears the session.
func (a *app) current() (model.Principal, bool) {
	p, err := a.identity.ParseSession(a.session)
	if err != nil {
		a.session = ""
		fmt.Println("Session expired, please log in again.")
		return model.Principal{}, false
	}
	return p, true
}

func (a *app) login() {
	username := a.prompt("Username: ")
	password := a.prompt("Password: ")
	p, err := a.identity.Authenticate(a.ctx, username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrBanned) {
			// Banned accounts get the same message as wrong passwords.
			fmt.Println("Invalid credentials!")
		} else {
			fmt.Println("Error:", err)
		}
		return
	}
	tok, err := a.identity.SessionToken(p)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	a.session = tok.Token
	fmt.Printf("Welcome, %s!\n", p.Username)
	switch p.Role {
	case model.RoleUser:
		a.userMenu()
	case model.RoleTheatre:
		a.theatreMenu()
	case model.RoleSystem:
		a.systemMenu()
	}
	a.session = ""
}

func (a *app) register() {
	username := a.prompt("Username: ")
	password := a.prompt("Password: ")
	email := a.prompt("Email: ")
	_, err := a.identity.Register(a.ctx, username, password, email)
	switch {
	case errors.Is(err, repository.ErrUsernameExists):
		fmt.Println("Username already taken!")
	case errors.Is(err, repository.ErrEmailExists):
		fmt.Println("Email already registered!")
	case errors.Is(err, service.ErrEmptyValue):
		fmt.Println("All fields are required!")
	case err != nil:
		fmt.Println("Error:", err)
	default:
		fmt.Println("Registration successful, you can now log in.")
	}
}

func (a *app) userMenu() {
	for {
		fmt.Println()
		fmt.Println("1. View movies")
		fmt.Println("2. Book tickets")
		fmt.Println("3. My bookings")
		fmt.Println("4. Cancel a booking")
		fmt.Println("5. Logout")
		switch a.prompt("Select an option: ") {
		case "1":
			a.listShowings()
		case "2":
			a.bookTickets()
		case "3":
			a.myBookings()
		case "4":
			a.cancelBooking()
		case "5":
			return
		default:
			fmt.Println("Invalid option!")
		}
		if a.session == "" {
			return
		}
	}
}

func (a *app) listShowings() {
	showings, err := a.booking.ListShowings(a.ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(showings) == 0 {
		fmt.Println("No movies are currently showing.")
		return
	}
	for _, sh := range showings {
		fmt.Printf("%d. %s (%s, %d min) at theatre %d, %s, %d seats left, $%s\n",
			sh.ID, sh.Title, sh.Genre, sh.DurationMin, sh.TheatreID,
			sh.Showtime, sh.AvailableSeats, model.FormatPrice(sh.PriceCents))
	}
}

func (a *app) bookTickets() {
	p, ok := a.current()
	if !ok {
		return
	}
	a.listShowings()
	id, ok := a.promptUint("Showing number: ")
	if !ok {
		return
	}
	layout, err := a.booking.GetSeatLayout(a.ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrShowingNotFound) {
			fmt.Println("Showing not found!")
		} else {
			fmt.Println("Error:", err)
		}
		return
	}
	grid := service.SeatGrid(layout.TotalSeats, layout.SeatsPerRow)
	fmt.Println(renderSeatGrid(grid, layout.Booked))
	raw := a.prompt("Seats (comma separated, e.g. A1,A2): ")
	seats := strings.Split(raw, ",")
	bookingID, err := a.booking.BookTickets(a.ctx, p.ID, id, seats)
	switch {
	case errors.Is(err, service.ErrNoSeats):
		fmt.Println("No seats selected!")
	case errors.Is(err, service.ErrSeatConflict):
		fmt.Println("Sorry, one of those seats is taken:", err)
	case errors.Is(err, service.ErrInsufficientSeats):
		fmt.Printf("Only %d seats are available for this showing!\n", layout.AvailableSeats)
	case errors.Is(err, repository.ErrShowingNotFound):
		fmt.Println("Showing not found!")
	case err != nil:
		fmt.Println("Error:", err)
	default:
		fmt.Printf("Booking #%d confirmed. Enjoy the movie!\n", bookingID)
	}
}

func (a *app) myBookings() {
	p, ok := a.current()
	if !ok {
		return
	}
	bookings, err := a.booking.GetUserBookings(a.ctx, p.ID)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(bookings) == 0 {
		fmt.Println("You have no bookings.")
		return
	}
	for _, b := range bookings {
		fmt.Printf("Booking #%d: showing %d, seats %s, $%s, booked %s\n",
			b.ID, b.ShowingID, model.JoinSeats(b.SeatNumbers),
			model.FormatPrice(b.TotalPriceCents), b.BookingDate)
	}
}

func (a *app) cancelBooking() {
	p, ok := a.current()
	if !ok {
		return
	}
	id, ok := a.promptUint("Booking number: ")
	if !ok {
		return
	}
	err := a.booking.CancelBooking(a.ctx, id, p.ID)
	switch {
	case errors.Is(err, repository.ErrBookingNotFound):
		fmt.Println("Booking not found!")
	case err != nil:
		fmt.Println("Error:", err)
	default:
		fmt.Println("Booking cancelled, seats released.")
	}
}

func (a *app) theatreMenu() {
	for {
		fmt.Println()
		fmt.Println("1. View movies")
		fmt.Println("2. Add a showing")
		fmt.Println("3. Theatre bookings and revenue")
		fmt.Println("4. Logout")
		switch a.prompt("Select an option: ") {
		case "1":
			a.listShowings()
		case "2":
			a.addShowing()
		case "3":
			a.theatreBookings()
		case "4":
			return
		default:
			fmt.Println("Invalid option!")
		}
		if a.session == "" {
			return
		}
	}
}

func (a *app) addShowing() {
	p, ok := a.current()
	if !ok {
		return
	}
	title := a.prompt("Title: ")
	genre := a.prompt("Genre: ")
	duration, ok := a.promptUint("Duration (minutes): ")
	if !ok {
		return
	}
	showtime := a.prompt("Showtime: ")
	seats, ok := a.promptUint("Seat capacity: ")
	if !ok {
		return
	}
	cents, err := model.ParsePrice(a.prompt("Ticket price: "))
	if err != nil {
		fmt.Println("Invalid price!")
		return
	}
	sh := model.Showing{
		Title:          title,
		Genre:          genre,
		DurationMin:    uint32(duration),
		TheatreID:      p.TheatreID,
		Showtime:       showtime,
		AvailableSeats: uint32(seats),
		PriceCents:     cents,
	}
	if err := a.booking.AddShowing(a.ctx, &sh); err != nil {
		if errors.Is(err, service.ErrEmptyValue) {
			fmt.Println("Title is required!")
		} else {
			fmt.Println("Error:", err)
		}
		return
	}
	fmt.Printf("Showing #%d added.\n", sh.ID)
}

func (a *app) theatreBookings() {
	p, ok := a.current()
	if !ok {
		return
	}
	bookings, revenue, err := a.booking.GetTheatreBookings(a.ctx, p.TheatreID)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(bookings) == 0 {
		fmt.Println("No bookings for this theatre yet.")
		return
	}
	for _, b := range bookings {
		fmt.Printf("Booking #%d by %s: showing %d, seats %s, $%s\n",
			b.ID, b.Username, b.ShowingID, model.JoinSeats(b.SeatNumbers),
			model.FormatPrice(b.TotalPriceCents))
	}
	fmt.Printf("Total revenue: $%s\n", model.FormatPrice(uint32(revenue)))
}

func (a *app) systemMenu() {
	for {
		fmt.Println()
		fmt.Println("1. System statistics")
		fmt.Println("2. All bookings")
		fmt.Println("3. Manage theatre admins")
		fmt.Println("4. Manage user accounts")
		fmt.Println("5. Ban management")
		fmt.Println("6. Logout")
		switch a.prompt("Select an option: ") {
		case "1":
			a.stats()
		case "2":
			a.allBookings()
		case "3":
			a.theatreAdminMenu()
		case "4":
			a.userAccountMenu()
		case "5":
			a.banMenu()
		case "6":
			return
		default:
			fmt.Println("Invalid option!")
		}
		if a.session == "" {
			return
		}
	}
}

func (a *app) stats() {
	st, err := a.booking.GetStats(a.ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("Users: %d\nShowings: %d\nBookings: %d\nTickets sold: %d\nTotal revenue: $%s\n",
		st.Users, st.Showings, st.Bookings, st.TicketsSold, model.FormatPrice(uint32(st.RevenueCents)))
}

func (a *app) allBookings() {
	bookings, err := a.booking.GetAllBookings(a.ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(bookings) == 0 {
		fmt.Println("No bookings yet.")
		return
	}
	for _, b := range bookings {
		fmt.Printf("Booking #%d: user %d, showing %d, seats %s, $%s, booked %s\n",
			b.ID, b.UserID, b.ShowingID, model.JoinSeats(b.SeatNumbers),
			model.FormatPrice(b.TotalPriceCents), b.BookingDate)
	}
}

func (a *app) theatreAdminMenu() {
	for {
		fmt.Println()
		fmt.Println("1. List theatre admins")
		fmt.Println("2. Create theatre admin")
		fmt.Println("3. Modify theatre admin")
		fmt.Println("4. Delete theatre admin")
		fmt.Println("5. Back")
		switch a.prompt("Select an option: ") {
		case "1":
			a.listTheatreAdmins()
		case "2":
			a.createTheatreAdmin()
		case "3":
			a.modifyTheatreAdmin()
		case "4":
			a.deleteTheatreAdmin()
		case "5":
			return
		default:
			fmt.Println("Invalid option!")
		}
	}
}

func (a *app) listTheatreAdmins() {
	admins, err := a.identity.ListTheatreAdmins(a.ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(admins) == 0 {
		fmt.Println("No theatre admins.")
		return
	}
	for _, ad := range admins {
		fmt.Printf("%d. %s (theatre %d)\n", ad.ID, ad.Username, ad.TheatreID)
	}
}

func (a *app) createTheatreAdmin() {
	username := a.prompt("Username: ")
	password := a.prompt("Password: ")
	theatreID, ok := a.promptUint("Theatre number: ")
	if !ok {
		return
	}
	id, err := a.identity.CreateTheatreAdmin(a.ctx, username, password, theatreID)
	switch {
	case errors.Is(err, repository.ErrUsernameExists):
		fmt.Println("Username already taken!")
	case errors.Is(err, service.ErrEmptyValue):
		fmt.Println("Username and password are required!")
	case err != nil:
		fmt.Println("Error:", err)
	default:
		fmt.Printf("Theatre admin #%d created.\n", id)
	}
}

func (a *app) modifyTheatreAdmin() {
	id, ok := a.promptUint("Admin number: ")
	if !ok {
		return
	}
	username := a.promptOptional("New username (blank to keep): ")
	password := a.promptOptional("New password (blank to keep): ")
	var theatreID *uint64
	if raw := a.prompt("New theatre number (blank to keep): "); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			fmt.Println("Invalid number!")
			return
		}
		theatreID = &n
	}
	err := a.identity.ModifyTheatreAdmin(a.ctx, id, username, password, theatreID)
	switch {
	case errors.Is(err, repository.ErrAdminNotFound):
		fmt.Println("Theatre admin not found!")
	case errors.Is(err, repository.ErrUsernameExists):
		fmt.Println("Username already taken!")
	case err != nil:
		fmt.Println("Error:", err)
	default:
		fmt.Println("Theatre admin updated.")
	}
}

func (a *app) deleteTheatreAdmin() {
	id, ok := a.promptUint("Admin number: ")
	if !ok {
		return
	}
	err := a.identity.DeleteTheatreAdmin(a.ctx, id)
	switch {
	case errors.Is(err, repository.ErrAdminNotFound):
		fmt.Println("Theatre admin not found!")
	case err != nil:
		fmt.Println("Error:", err)
	default:
		fmt.Println("Theatre admin deleted.")
	}
}

func (a *app) userAccountMenu() {
	for {
		fmt.Println()
		fmt.Println("1. List users")
		fmt.Println("2. Modify user")
		fmt.Println("3. Delete user")
		fmt.Println("4. Back")
		switch a.prompt("Select an option: ") {
		case "1":
			a.listUsers()
		case "2":
			a.modifyUser()
		case "3":
			a.deleteUser()
		case "4":
			return
		default:
			fmt.Println("Invalid option!")
		}
	}
}

func (a *app) listUsers() {
	users, err := a.identity.ListUsers(a.ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(users) == 0 {
		fmt.Println("No registered users.")
		return
	}
	for _, u := range users {
		fmt.Printf("%d. %s <%s> [%s]\n", u.ID, u.Username, u.Email, u.Status)
	}
}

func (a *app) modifyUser() {
	id, ok := a.promptUint("User number: ")
	if !ok {
		return
	}
	username := a.promptOptional("New username (blank to keep): ")
	password := a.promptOptional("New password (blank to keep): ")
	email := a.promptOptional("New email (blank to keep): ")
	err := a.identity.ModifyUser(a.ctx, id, username, password, email)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		fmt.Println("User not found!")
	case errors.Is(err, repository.ErrUsernameExists):
		fmt.Println("Username already taken!")
	case errors.Is(err, repository.ErrEmailExists):
		fmt.Println("Email already registered!")
	case err != nil:
		fmt.Println("Error:", err)
	default:
		fmt.Println("User updated.")
	}
}

func (a *app) deleteUser() {
	id, ok := a.promptUint("User number: ")
	if !ok {
		return
	}
	err := a.identity.DeleteUser(a.ctx, id)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		fmt.Println("User not found!")
	case err != nil:
		fmt.Println("Error:", err)
	default:
		fmt.Println("User deleted and their seats released.")
	}
}

func (a *app) banMenu() {
	for {
		fmt.Println()
		fmt.Println("1. List banned users")
		fmt.Println("2. Ban user by email")
		fmt.Println("3. Unban user by email")
		fmt.Println("4. Back")
		switch a.prompt("Select an option: ") {
		case "1":
			a.listBanned()
		case "2":
			a.setBan(true)
		case "3":
			a.setBan(false)
		case "4":
			return
		default:
			fmt.Println("Invalid option!")
		}
	}
}

func (a *app) listBanned() {
	users, err := a.identity.ListBannedUsers(a.ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(users) == 0 {
		fmt.Println("No banned users.")
		return
	}
	for _, u := range users {
		fmt.Printf("%d. %s <%s>\n", u.ID, u.Username, u.Email)
	}
}

func (a *app) setBan(ban bool) {
	email := a.prompt("Email: ")
	var err error
	if ban {
		err = a.identity.BanUserByEmail(a.ctx, email)
	} else {
		err = a.identity.UnbanUserByEmail(a.ctx, email)
	}
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		fmt.Println("No user with that email!")
	case err != nil:
		fmt.Println("Error:", err)
	case ban:
		fmt.Println("User banned.")
	default:
		fmt.Println("User unbanned.")
	}
}

func (a *app) prompt(label string) string {
	fmt.Print(label)
	if !a.in.Scan() {
		fmt.Println()
		os.Exit(0)
	}
	return strings.TrimSpace(a.in.Text())
}

// promptOptional returns nil for blank input, meaning "keep current".
func (a *app) promptOptional(label string) *string {
	v := a.prompt(label)
	if v == "" {
		return nil
	}
	return &v
}

func (a *app) promptUint(label string) (uint64, bool) {
	n, err := strconv.ParseUint(a.prompt(label), 10, 64)
	if err != nil || n == 0 {
		fmt.Println("Invalid number!")
		return 0, false
	}
	return n, true
}
