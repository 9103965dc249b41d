package utils

import (
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"time"

	"github.com/paylinq/workforce/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var firstNames = []string{
	"Alice", "Ben", "Carla", "Diego", "Elena", "Frank", "Grace", "Hugo",
	"Ines", "Jamal", "Kira", "Liam", "Mona", "Noah", "Olga", "Pavel",
	"Quinn", "Rosa", "Sam", "Tara", "Umar", "Vera", "Wes", "Yara", "Zoe",
}
var lastNames = []string{
	"Adams", "Bauer", "Costa", "Diaz", "Evans", "Fischer", "Garcia",
	"Hansen", "Ivanov", "Jensen", "Klein", "Lopez", "Meyer", "Nguyen",
	"Okafor", "Perez", "Quintero", "Rossi", "Silva", "Tanaka", "Ueda",
	"Vargas", "Weber", "Young", "Zhang",
}

func GenerateRandomFullName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

var digits = "0123456789"

func GenerateUsernameFromFullName(fullName string) string {
	parts := strings.Fields(strings.ToLower(fullName))
	username := ""
	for _, part := range parts {
		length := rand.Intn(len(part)) + 1
		username += part[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

var jobRolePool = []string{"cashier", "stocker", "supervisor", "cleaner", "barista"}

// GenerateRandomJobRoles picks one to three distinct job roles.
func GenerateRandomJobRoles() []string {
	shuffled := append([]string{}, jobRolePool...)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:rand.Intn(3)+1]
}

func GenerateRandomWorker(password string, emailDomainName string) (*domain.Worker, error) {
	fullName := GenerateRandomFullName()
	username := GenerateUsernameFromFullName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	worker := &domain.Worker{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		AccountRole:  domain.RoleStaff,
		JobRoles:     GenerateRandomJobRoles(),
		HourlyRate:   int64(rand.Intn(2000) + 1000), // 10.00 - 30.00
		Currency:     "USD",
	}

	return worker, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

var stationNames = []string{
	"Front Desk", "Checkout", "Warehouse", "Deli Counter", "Bakery",
	"Drive-Thru", "Receiving", "Customer Service", "Kitchen", "Floor",
}

func GenerateRandomStation() *domain.Station {
	return &domain.Station{
		Name:     fmt.Sprintf("%s %03d", stationNames[rand.Intn(len(stationNames))], rand.Intn(1000)),
		Location: fmt.Sprintf("Building %c, floor %d", 'A'+rune(rand.Intn(4)), rand.Intn(5)+1),
	}
}

func GenerateRandomShiftTemplate(stationID int64) *domain.ShiftTemplate {
	st := &domain.ShiftTemplate{
		Name:          fmt.Sprintf("Weekly plan %04d", rand.Intn(10000)),
		Description:   "Generated template",
		StationID:     stationID,
		RequiredRoles: GenerateRandomJobRoles(),
	}

	slotsNum := rand.Intn(3) + 1
	hoursPerSlot := 24 / (slotsNum + 1)

	for i := 0; i < slotsNum; i++ {
		startHour := i * hoursPerSlot
		endHour := startHour + rand.Intn(hoursPerSlot-1) + 1

		st.Slots = append(st.Slots, domain.ShiftTemplateSlot{
			StartTime: fmt.Sprintf("%02d:%02d", startHour, rand.Intn(30)),
			EndTime:   fmt.Sprintf("%02d:%02d", endHour, rand.Intn(30)+30),
			Days:      GenerateRandomDays(),
		})
	}

	return st
}

// GenerateRandomDays picks a random non-empty subset of the week,
// 1 = Monday through 7 = Sunday.
func GenerateRandomDays() []int32 {
	days := []int32{1, 2, 3, 4, 5, 6, 7}
	rand.Shuffle(len(days), func(i, j int) {
		days[i], days[j] = days[j], days[i]
	})
	picked := append([]int32{}, days[:rand.Intn(len(days))+1]...)
	slices.Sort(picked)
	return picked
}

func GenerateRandomShift(stationID, workerID int64, date time.Time) *domain.Shift {
	startHour := rand.Intn(15)
	duration := rand.Intn(6) + 3 // 3 to 8 hours
	if startHour+duration > 23 {
		duration = 23 - startHour
	}

	return &domain.Shift{
		StationID: stationID,
		WorkerID:  workerID,
		ShiftDate: date,
		StartTime: fmt.Sprintf("%02d:00", startHour),
		EndTime:   fmt.Sprintf("%02d:00", startHour+duration),
		Status:    domain.ShiftStatusScheduled,
	}
}
