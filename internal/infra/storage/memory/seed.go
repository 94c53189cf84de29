package memory

import (
	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Demo пользователи и каталог, созданные SeedDemo
type Demo struct {
	Admin    domain.User
	Customer domain.User
	Stylist  domain.Stylist
	Services []domain.Service
}

// SeedDemo наполняет пустое хранилище для локального запуска без postgres
func SeedDemo(s *Store) Demo {
	now := s.clock.Now()

	admin := s.AddUser(domain.User{
		FullName:    "Salon Admin",
		Email:       "admin@salon.local",
		Role:        domain.RoleAdmin,
		Status:      domain.UserActive,
		LastLoginAt: &now,
	})
	customer := s.AddUser(domain.User{
		FullName:    "Demo Customer",
		Email:       "customer@salon.local",
		PhoneNumber: "+70000000000",
		Role:        domain.RoleCustomer,
		Status:      domain.UserActive,
		LastLoginAt: &now,
	})
	stylistUser := s.AddUser(domain.User{
		FullName:    "Demo Stylist",
		Email:       "stylist@salon.local",
		Role:        domain.RoleStylist,
		Status:      domain.UserActive,
		LastLoginAt: &now,
	})

	stylist := s.AddStylist(domain.Stylist{
		UserID:         stylistUser.ID,
		FullName:       stylistUser.FullName,
		Specialization: "Hair",
	})

	services := []domain.Service{
		s.AddService(domain.Service{
			StylistID:       stylist.ID,
			Name:            "Haircut",
			Description:     "Classic haircut",
			Price:           1500,
			DurationMinutes: 60,
		}),
		s.AddService(domain.Service{
			StylistID:       stylist.ID,
			Name:            "Coloring",
			Description:     "Single tone coloring",
			Price:           4000,
			DurationMinutes: 120,
		}),
	}

	return Demo{
		Admin:    admin,
		Customer: customer,
		Stylist:  stylist,
		Services: services,
	}
}
