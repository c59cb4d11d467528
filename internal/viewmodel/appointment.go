package viewmodel

import (
	"context"

	"pethome/internal/domain/services"
	"pethome/internal/state"
)

// AppointmentFormState es el estado del formulario de agendamiento.
// SelectedDate es epoch millis; cero significa sin fecha elegida.
type AppointmentFormState struct {
	SelectedPetID string
	SelectedDate  int64
	SelectedTime  string
	Notes         string

	IsLoading    bool
	ErrorMessage string
	IsSuccess    bool
}

type ServiceViewModel struct {
	svc    *services.Service
	userID string

	services     *state.Value[[]services.VeterinaryService]
	appointments *state.Value[[]services.Appointment]
	selected     *state.Value[*services.VeterinaryService]
	form         *state.Value[AppointmentFormState]
}

func NewServiceViewModel(svc *services.Service, userID string) *ServiceViewModel {
	return &ServiceViewModel{
		svc:          svc,
		userID:       userID,
		services:     state.NewValue([]services.VeterinaryService{}),
		appointments: state.NewValue([]services.Appointment{}),
		selected:     state.NewValue[*services.VeterinaryService](nil),
		form:         state.NewValue(AppointmentFormState{}),
	}
}

// Run consume los streams de catálogo y de citas del usuario hasta que ctx
// termine. Cada emisión reemplaza la lista publicada completa.
func (vm *ServiceViewModel) Run(ctx context.Context) {
	go func() {
		for list := range vm.svc.WatchServices(ctx) {
			vm.services.Set(list)
		}
	}()
	for list := range vm.svc.WatchAppointmentsByUser(ctx, vm.userID) {
		vm.appointments.Set(list)
	}
}

func (vm *ServiceViewModel) Services() []services.VeterinaryService {
	return vm.services.Get()
}

func (vm *ServiceViewModel) WatchServices(ctx context.Context) <-chan []services.VeterinaryService {
	return vm.services.Watch(ctx)
}

func (vm *ServiceViewModel) Appointments() []services.Appointment {
	return vm.appointments.Get()
}

func (vm *ServiceViewModel) WatchAppointments(ctx context.Context) <-chan []services.Appointment {
	return vm.appointments.Watch(ctx)
}

func (vm *ServiceViewModel) SelectService(s services.VeterinaryService) {
	vm.selected.Set(&s)
}

func (vm *ServiceViewModel) SelectedService() *services.VeterinaryService {
	return vm.selected.Get()
}

func (vm *ServiceViewModel) ClearSelectedService() {
	vm.selected.Set(nil)
}

func (vm *ServiceViewModel) FormState() AppointmentFormState {
	return vm.form.Get()
}

func (vm *ServiceViewModel) WatchForm(ctx context.Context) <-chan AppointmentFormState {
	return vm.form.Watch(ctx)
}

func (vm *ServiceViewModel) OnPetSelected(petID string) {
	vm.form.Update(func(s AppointmentFormState) AppointmentFormState {
		s.SelectedPetID = petID
		s.ErrorMessage = ""
		return s
	})
}

func (vm *ServiceViewModel) OnDateSelected(dateMillis int64) {
	vm.form.Update(func(s AppointmentFormState) AppointmentFormState {
		s.SelectedDate = dateMillis
		s.ErrorMessage = ""
		return s
	})
}

func (vm *ServiceViewModel) OnTimeSelected(timeSlot string) {
	vm.form.Update(func(s AppointmentFormState) AppointmentFormState {
		s.SelectedTime = timeSlot
		s.ErrorMessage = ""
		return s
	})
}

func (vm *ServiceViewModel) OnNotesChange(notes string) {
	vm.form.Update(func(s AppointmentFormState) AppointmentFormState {
		s.Notes = notes
		return s
	})
}

func (vm *ServiceViewModel) ClearError() {
	vm.form.Update(func(s AppointmentFormState) AppointmentFormState {
		s.ErrorMessage = ""
		return s
	})
}

func (vm *ServiceViewModel) ClearAppointmentForm() {
	vm.form.Set(AppointmentFormState{})
}

func (vm *ServiceViewModel) ResetSuccessState() {
	vm.form.Update(func(s AppointmentFormState) AppointmentFormState {
		s.IsSuccess = false
		return s
	})
}

// CreateAppointment valida mascota, fecha y hora en ese orden; el primer
// faltante corta con su mensaje y no hay llamada al servicio. El estado
// inicial de la cita lo decide la capa de dominio, no el formulario.
func (vm *ServiceViewModel) CreateAppointment(ctx context.Context, serviceID string) {
	cur := vm.form.Get()

	setError := func(msg string) {
		vm.form.Update(func(s AppointmentFormState) AppointmentFormState {
			s.ErrorMessage = msg
			return s
		})
	}

	if isBlank(cur.SelectedPetID) {
		setError("Debes seleccionar una mascota")
		return
	}
	if cur.SelectedDate == 0 {
		setError("Debes seleccionar una fecha")
		return
	}
	if isBlank(cur.SelectedTime) {
		setError("Debes seleccionar una hora")
		return
	}

	vm.form.Update(func(s AppointmentFormState) AppointmentFormState {
		s.IsLoading = true
		return s
	})

	_, err := vm.svc.CreateAppointment(ctx, services.Appointment{
		UserID:    vm.userID,
		PetID:     cur.SelectedPetID,
		ServiceID: serviceID,
		Date:      cur.SelectedDate,
		Time:      cur.SelectedTime,
		Notes:     cur.Notes,
	})

	vm.form.Update(func(s AppointmentFormState) AppointmentFormState {
		s.IsLoading = false
		if err != nil {
			s.ErrorMessage = err.Error()
			return s
		}
		s.IsSuccess = true
		s.ErrorMessage = ""
		return s
	})
}

// CancelAppointment delega en la capa de dominio; la cita cancelada sigue
// visible en el historial con su nuevo estado.
func (vm *ServiceViewModel) CancelAppointment(ctx context.Context, appointmentID string) error {
	return vm.svc.CancelAppointment(ctx, appointmentID)
}
