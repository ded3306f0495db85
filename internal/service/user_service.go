package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetUser(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

// GetTeacher returns a teacher's public profile. Looking up a student this
// way reads as not found.
func (s *UserService) GetTeacher(id uint) (*model.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	if user.Role != model.Teacher {
		return nil, util.ErrUserNotFound
	}
	return user, nil
}

// GetStudent returns a student's profile, not-found for any other role.
func (s *UserService) GetStudent(id uint) (*model.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	if user.Role != model.Student {
		return nil, util.ErrUserNotFound
	}
	return user, nil
}

// TeacherProfileUpdate carries the patchable teacher fields; nil means
// leave unchanged.
type TeacherProfileUpdate struct {
	Name          *string
	Qualification *string
	MobileNo      *string
	Experience    *int
	Expertise     *string
}

func (s *UserService) UpdateTeacherProfile(userID uint, update TeacherProfileUpdate) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	if user.Role != model.Teacher || user.TeacherProfile == nil {
		return nil, util.ErrPermissionDenied
	}

	if update.Name != nil {
		user.Name = *update.Name
		if err := s.UserRepo.Update(user); err != nil {
			return nil, err
		}
	}

	profile := user.TeacherProfile
	if update.Qualification != nil {
		profile.Qualification = *update.Qualification
	}
	if update.MobileNo != nil {
		profile.MobileNo = *update.MobileNo
	}
	if update.Experience != nil {
		profile.Experience = *update.Experience
	}
	if update.Expertise != nil {
		profile.Expertise = *update.Expertise
	}
	if err := s.UserRepo.UpdateTeacherProfile(profile); err != nil {
		return nil, err
	}

	return s.UserRepo.FindByID(userID)
}

// StudentProfileUpdate carries the patchable student fields.
type StudentProfileUpdate struct {
	Name                 *string
	Qualification        *string
	MobileNo             *string
	Address              *string
	InterestedCategories *string
}

func (s *UserService) UpdateStudentProfile(userID uint, update StudentProfileUpdate) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	if user.Role != model.Student || user.StudentProfile == nil {
		return nil, util.ErrPermissionDenied
	}

	if update.Name != nil {
		user.Name = *update.Name
		if err := s.UserRepo.Update(user); err != nil {
			return nil, err
		}
	}

	profile := user.StudentProfile
	if update.Qualification != nil {
		profile.Qualification = *update.Qualification
	}
	if update.MobileNo != nil {
		profile.MobileNo = *update.MobileNo
	}
	if update.Address != nil {
		profile.Address = *update.Address
	}
	if update.InterestedCategories != nil {
		profile.InterestedCategories = *update.InterestedCategories
	}
	if err := s.UserRepo.UpdateStudentProfile(profile); err != nil {
		return nil, err
	}

	return s.UserRepo.FindByID(userID)
}
